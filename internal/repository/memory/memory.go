// Package memory provides in-memory repository implementations with the
// same invariants as the postgres layer (uniqueness, cascades,
// newest-first listings). Intended for tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
	apperrors "github.com/havenmed/records-api/pkg/errors"
)

type Store struct {
	mu sync.RWMutex

	users     map[uuid.UUID]*model.User
	patients  map[uuid.UUID]*model.Patient
	folders   map[uuid.UUID]*model.CaseFolder
	histories map[uuid.UUID]*model.MedicalHistory
	diagnoses map[uuid.UUID]*model.DiagnosisAdmission
	vitals    map[uuid.UUID]*model.VitalSigns
	notes     map[uuid.UUID]*model.PatientNote

	seq     map[uuid.UUID]int64
	counter int64
}

func NewStore() *Store {
	return &Store{
		users:     make(map[uuid.UUID]*model.User),
		patients:  make(map[uuid.UUID]*model.Patient),
		folders:   make(map[uuid.UUID]*model.CaseFolder),
		histories: make(map[uuid.UUID]*model.MedicalHistory),
		diagnoses: make(map[uuid.UUID]*model.DiagnosisAdmission),
		vitals:    make(map[uuid.UUID]*model.VitalSigns),
		notes:     make(map[uuid.UUID]*model.PatientNote),
		seq:       make(map[uuid.UUID]int64),
	}
}

// next assigns a monotonic insertion order so newest-first listings are
// stable even when timestamps collide.
func (s *Store) next(id uuid.UUID) {
	s.counter++
	s.seq[id] = s.counter
}

func (s *Store) Users() repository.UserRepository               { return &userRepo{s} }
func (s *Store) Patients() repository.PatientRepository         { return &patientRepo{s} }
func (s *Store) CaseFolders() repository.CaseFolderRepository   { return &folderRepo{s} }
func (s *Store) Histories() repository.MedicalHistoryRepository { return &historyRepo{s} }
func (s *Store) Diagnoses() repository.DiagnosisRepository      { return &diagnosisRepo{s} }
func (s *Store) Vitals() repository.VitalSignsRepository        { return &vitalsRepo{s} }
func (s *Store) Notes() repository.PatientNoteRepository        { return &noteRepo{s} }

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return apperrors.Conflict("username already taken")
		}
		if u.Email == user.Email {
			return apperrors.Conflict("email already registered")
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	r.s.users[user.ID] = &cp
	r.s.next(user.ID)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *userRepo) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return apperrors.NotFound("user")
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) UpdateRefreshToken(_ context.Context, id uuid.UUID, token *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	u.RefreshToken = token
	return nil
}

func (r *userRepo) SetAuthorized(_ context.Context, id uuid.UUID, authorized bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	u.Authorized = authorized
	return nil
}

func (r *userRepo) SetLoginCode(_ context.Context, id uuid.UUID, code *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	u.LoginCode = code
	return nil
}

func (r *userRepo) List(_ context.Context) ([]*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sortNewest(r.s, out, func(u *model.User) uuid.UUID { return u.ID })
	return out, nil
}

type patientRepo struct{ s *Store }

func (r *patientRepo) Create(_ context.Context, patient *model.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = time.Now()
	}
	cp := *patient
	r.s.patients[patient.ID] = &cp
	r.s.next(patient.ID)
	return nil
}

func (r *patientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient")
	}
	cp := *p
	return &cp, nil
}

func (r *patientRepo) Update(_ context.Context, patient *model.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[patient.ID]; !ok {
		return apperrors.NotFound("patient")
	}
	cp := *patient
	r.s.patients[patient.ID] = &cp
	return nil
}

// Delete cascades to the patient's case folders and their children.
func (r *patientRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[id]; !ok {
		return apperrors.NotFound("patient")
	}
	delete(r.s.patients, id)
	for fid, f := range r.s.folders {
		if f.PatientID == id {
			r.s.deleteFolderLocked(fid)
		}
	}
	return nil
}

func (r *patientRepo) List(_ context.Context) ([]*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Patient, 0, len(r.s.patients))
	for _, p := range r.s.patients {
		cp := *p
		out = append(out, &cp)
	}
	sortNewest(r.s, out, func(p *model.Patient) uuid.UUID { return p.ID })
	return out, nil
}

type folderRepo struct{ s *Store }

func (r *folderRepo) Create(_ context.Context, folder *model.CaseFolder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.folders {
		if f.FolderNumber == folder.FolderNumber {
			return apperrors.Conflict("folder number already in use")
		}
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now()
	}
	cp := *folder
	r.s.folders[folder.ID] = &cp
	r.s.next(folder.ID)
	return nil
}

func (r *folderRepo) Get(_ context.Context, id uuid.UUID) (*model.CaseFolder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.folders[id]
	if !ok {
		return nil, apperrors.NotFound("case folder")
	}
	cp := *f
	return &cp, nil
}

func (r *folderRepo) Update(_ context.Context, folder *model.CaseFolder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.folders[folder.ID]; !ok {
		return apperrors.NotFound("case folder")
	}
	for _, f := range r.s.folders {
		if f.ID != folder.ID && f.FolderNumber == folder.FolderNumber {
			return apperrors.Conflict("folder number already in use")
		}
	}
	cp := *folder
	r.s.folders[folder.ID] = &cp
	return nil
}

func (r *folderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.folders[id]; !ok {
		return apperrors.NotFound("case folder")
	}
	r.s.deleteFolderLocked(id)
	return nil
}

func (s *Store) deleteFolderLocked(id uuid.UUID) {
	delete(s.folders, id)
	for hid, h := range s.histories {
		if h.CaseFolderID == id {
			delete(s.histories, hid)
		}
	}
	for did, d := range s.diagnoses {
		if d.CaseFolderID == id {
			delete(s.diagnoses, did)
		}
	}
	for vid, v := range s.vitals {
		if v.CaseFolderID == id {
			delete(s.vitals, vid)
		}
	}
	for nid, n := range s.notes {
		if n.CaseFolderID == id {
			delete(s.notes, nid)
		}
	}
}

func (r *folderRepo) List(_ context.Context) ([]*model.CaseFolder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.CaseFolder, 0, len(r.s.folders))
	for _, f := range r.s.folders {
		cp := *f
		out = append(out, &cp)
	}
	sortNewest(r.s, out, func(f *model.CaseFolder) uuid.UUID { return f.ID })
	return out, nil
}

func (r *folderRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.CaseFolder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.CaseFolder, 0)
	for _, f := range r.s.folders {
		if f.PatientID == patientID {
			cp := *f
			out = append(out, &cp)
		}
	}
	sortNewest(r.s, out, func(f *model.CaseFolder) uuid.UUID { return f.ID })
	return out, nil
}

type historyRepo struct{ s *Store }

func (r *historyRepo) Create(_ context.Context, history *model.MedicalHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.histories {
		if h.CaseFolderID == history.CaseFolderID {
			return apperrors.Conflict("medical history already exists for this case folder")
		}
	}
	now := time.Now()
	if history.CreatedAt.IsZero() {
		history.CreatedAt = now
	}
	if history.UpdatedAt.IsZero() {
		history.UpdatedAt = now
	}
	cp := *history
	r.s.histories[history.ID] = &cp
	r.s.next(history.ID)
	return nil
}

func (r *historyRepo) GetByCaseFolder(_ context.Context, caseFolderID uuid.UUID) (*model.MedicalHistory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, h := range r.s.histories {
		if h.CaseFolderID == caseFolderID {
			cp := *h
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("medical history")
}

func (r *historyRepo) Update(_ context.Context, history *model.MedicalHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.histories[history.ID]; !ok {
		return apperrors.NotFound("medical history")
	}
	history.UpdatedAt = time.Now()
	cp := *history
	r.s.histories[history.ID] = &cp
	return nil
}

type diagnosisRepo struct{ s *Store }

func (r *diagnosisRepo) Create(_ context.Context, diagnosis *model.DiagnosisAdmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if diagnosis.CreatedAt.IsZero() {
		diagnosis.CreatedAt = time.Now()
	}
	cp := *diagnosis
	r.s.diagnoses[diagnosis.ID] = &cp
	r.s.next(diagnosis.ID)
	return nil
}

func (r *diagnosisRepo) ListByCaseFolder(_ context.Context, caseFolderID uuid.UUID) ([]*model.DiagnosisAdmission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.DiagnosisAdmission, 0)
	for _, d := range r.s.diagnoses {
		if d.CaseFolderID == caseFolderID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sortNewest(r.s, out, func(d *model.DiagnosisAdmission) uuid.UUID { return d.ID })
	return out, nil
}

type vitalsRepo struct{ s *Store }

func (r *vitalsRepo) Create(_ context.Context, vitals *model.VitalSigns) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if vitals.RecordedAt.IsZero() {
		vitals.RecordedAt = time.Now()
	}
	cp := *vitals
	r.s.vitals[vitals.ID] = &cp
	r.s.next(vitals.ID)
	return nil
}

func (r *vitalsRepo) ListByCaseFolder(_ context.Context, caseFolderID uuid.UUID) ([]*model.VitalSigns, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.VitalSigns, 0)
	for _, v := range r.s.vitals {
		if v.CaseFolderID == caseFolderID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sortNewest(r.s, out, func(v *model.VitalSigns) uuid.UUID { return v.ID })
	return out, nil
}

type noteRepo struct{ s *Store }

func (r *noteRepo) Create(_ context.Context, note *model.PatientNote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	cp := *note
	r.s.notes[note.ID] = &cp
	r.s.next(note.ID)
	return nil
}

func (r *noteRepo) ListByCaseFolder(_ context.Context, caseFolderID uuid.UUID) ([]*model.PatientNote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.PatientNote, 0)
	for _, n := range r.s.notes {
		if n.CaseFolderID == caseFolderID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sortNewest(r.s, out, func(n *model.PatientNote) uuid.UUID { return n.ID })
	return out, nil
}

// sortNewest orders by insertion sequence, newest first. Callers must
// hold at least the read lock.
func sortNewest[T any](s *Store, items []T, id func(T) uuid.UUID) {
	sort.SliceStable(items, func(i, j int) bool {
		return s.seq[id(items[i])] > s.seq[id(items[j])]
	})
}
