package clinical

import (
	"context"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
)

// Service covers the clinical records that live inside a case folder:
// medical history, diagnoses, vital signs and notes. Every create
// verifies the parent folder and stamps the recording account.
type Service struct {
	folderRepo  repository.CaseFolderRepository
	historyRepo repository.MedicalHistoryRepository
	diagRepo    repository.DiagnosisRepository
	vitalsRepo  repository.VitalSignsRepository
	noteRepo    repository.PatientNoteRepository
}

func NewService(
	folderRepo repository.CaseFolderRepository,
	historyRepo repository.MedicalHistoryRepository,
	diagRepo repository.DiagnosisRepository,
	vitalsRepo repository.VitalSignsRepository,
	noteRepo repository.PatientNoteRepository,
) *Service {
	return &Service{
		folderRepo:  folderRepo,
		historyRepo: historyRepo,
		diagRepo:    diagRepo,
		vitalsRepo:  vitalsRepo,
		noteRepo:    noteRepo,
	}
}

func (s *Service) folderExists(ctx context.Context, folderID uuid.UUID) error {
	_, err := s.folderRepo.Get(ctx, folderID)
	return err
}

func (s *Service) CreateMedicalHistory(ctx context.Context, folderID uuid.UUID,
	req *model.CreateMedicalHistoryRequest, recordedBy uuid.UUID) (*model.MedicalHistory, error) {
	if err := s.folderExists(ctx, folderID); err != nil {
		return nil, err
	}

	history := &model.MedicalHistory{
		ID:                 uuid.New(),
		CaseFolderID:       folderID,
		Hypertension:       req.Hypertension,
		Measles:            req.Measles,
		ChickenPox:         req.ChickenPox,
		TB:                 req.TB,
		Diabetes:           req.Diabetes,
		YellowFever:        req.YellowFever,
		STI:                req.STI,
		KidneyDisease:      req.KidneyDisease,
		LiverDisease:       req.LiverDisease,
		Epilepsy:           req.Epilepsy,
		SCDisease:          req.SCDisease,
		GDUlcer:            req.GDUlcer,
		RTAInjury:          req.RTAInjury,
		AlcoholSmoking:     req.AlcoholSmoking,
		PreviousOps:        req.PreviousOps,
		Schistosomiasis:    req.Schistosomiasis,
		RespiratoryDisease: req.RespiratoryDisease,
		MentalDisease:      req.MentalDisease,
		HIV:                req.HIV,
		Allergies:          req.Allergies,
		RecordedBy:         recordedBy,
	}

	if err := s.historyRepo.Create(ctx, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Service) GetMedicalHistory(ctx context.Context, folderID uuid.UUID) (*model.MedicalHistory, error) {
	if err := s.folderExists(ctx, folderID); err != nil {
		return nil, err
	}
	return s.historyRepo.GetByCaseFolder(ctx, folderID)
}

// UpdateMedicalHistory replaces the folder's condition checklist. The
// original recorder is preserved.
func (s *Service) UpdateMedicalHistory(ctx context.Context, folderID uuid.UUID,
	req *model.CreateMedicalHistoryRequest) (*model.MedicalHistory, error) {
	if err := s.folderExists(ctx, folderID); err != nil {
		return nil, err
	}

	history, err := s.historyRepo.GetByCaseFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	history.Hypertension = req.Hypertension
	history.Measles = req.Measles
	history.ChickenPox = req.ChickenPox
	history.TB = req.TB
	history.Diabetes = req.Diabetes
	history.YellowFever = req.YellowFever
	history.STI = req.STI
	history.KidneyDisease = req.KidneyDisease
	history.LiverDisease = req.LiverDisease
	history.Epilepsy = req.Epilepsy
	history.SCDisease = req.SCDisease
	history.GDUlcer = req.GDUlcer
	history.RTAInjury = req.RTAInjury
	history.AlcoholSmoking = req.AlcoholSmoking
	history.PreviousOps = req.PreviousOps
	history.Schistosomiasis = req.Schistosomiasis
	history.RespiratoryDisease = req.RespiratoryDisease
	history.MentalDisease = req.MentalDisease
	history.HIV = req.HIV
	history.Allergies = req.Allergies

	if err := s.historyRepo.Update(ctx, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Service) CreateDiagnosis(ctx context.Context, folderID uuid.UUID,
	req *model.CreateDiagnosisRequest, recordedBy uuid.UUID) (*model.DiagnosisAdmission, error) {
	if err := s.folderExists(ctx, folderID); err != nil {
		return nil, err
	}

	diagnosis := &model.DiagnosisAdmission{
		ID:            uuid.New(),
		CaseFolderID:  folderID,
		Date:          req.Date,
		Diagnosis:     req.Diagnosis,
		AdmissionDate: req.AdmissionDate,
		DischargeDate: req.DischargeDate,
		RecordedBy:    recordedBy,
		CreatedBy:     recordedBy,
	}

	if err := s.diagRepo.Create(ctx, diagnosis); err != nil {
		return nil, err
	}
	return diagnosis, nil
}

func (s *Service) ListDiagnoses(ctx context.Context, folderID uuid.UUID) ([]*model.DiagnosisAdmission, error) {
	if err := s.folderExists(ctx, folderID); err != nil {
		return nil, err
	}
	return s.diagRepo.ListByCaseFolder(ctx, folderID)
}

func (s *Service) CreateVitalSigns(ctx context.Context, folderID uuid.UUID,
	req *model.CreateVitalSignsRequest, recordedBy uuid.UUID) (*model.VitalSigns, error) {
	if err := s.folderExists(ctx, folderID); err != nil {
		return nil, err
	}

	vitals := &model.VitalSigns{
		ID:            uuid.New(),
		CaseFolderID:  folderID,
		BloodPressure: req.BloodPressure,
		Pulse:         req.Pulse,
		Weight:        req.Weight,
		Height:        req.Height,
		UrineAlbumin:  req.UrineAlbumin,
		UrineSugar:    req.UrineSugar,
		RecordedBy:    recordedBy,
	}

	if err := s.vitalsRepo.Create(ctx, vitals); err != nil {
		return nil, err
	}
	return vitals, nil
}

func (s *Service) ListVitalSigns(ctx context.Context, folderID uuid.UUID) ([]*model.VitalSigns, error) {
	if err := s.folderExists(ctx, folderID); err != nil {
		return nil, err
	}
	return s.vitalsRepo.ListByCaseFolder(ctx, folderID)
}

// CreateNote stamps both the recording account and the author role tag.
// The tag always reflects the caller's real role.
func (s *Service) CreateNote(ctx context.Context, folderID uuid.UUID,
	req *model.CreatePatientNoteRequest, recorder *model.User) (*model.PatientNote, error) {
	if err := s.folderExists(ctx, folderID); err != nil {
		return nil, err
	}

	authorRole := model.RoleNurse
	if recorder.Role == model.RoleDoctor {
		authorRole = model.RoleDoctor
	}

	note := &model.PatientNote{
		ID:           uuid.New(),
		CaseFolderID: folderID,
		Surname:      req.Surname,
		OtherNames:   req.OtherNames,
		Date:         req.Date,
		Notes:        req.Notes,
		AuthorRole:   authorRole,
		RecordedBy:   recorder.ID,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, folderID uuid.UUID) ([]*model.PatientNote, error) {
	if err := s.folderExists(ctx, folderID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByCaseFolder(ctx, folderID)
}
