package clinical

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository/memory"
	apperrors "github.com/havenmed/records-api/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *memory.Store, uuid.UUID) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(store.CaseFolders(), store.Histories(), store.Diagnoses(),
		store.Vitals(), store.Notes())

	patient := &model.Patient{ID: uuid.New(), FirstName: "Ada", LastName: "Obi"}
	require.NoError(t, store.Patients().Create(context.Background(), patient))

	folder := &model.CaseFolder{
		ID:           uuid.New(),
		PatientID:    patient.ID,
		FolderNumber: "HAV/2026/0001",
		CreatedBy:    uuid.New(),
	}
	require.NoError(t, store.CaseFolders().Create(context.Background(), folder))

	return svc, store, folder.ID
}

func nurse() *model.User {
	return &model.User{ID: uuid.New(), Username: "nurse1", Role: model.RoleNurse}
}

func doctor() *model.User {
	return &model.User{ID: uuid.New(), Username: "doc1", Role: model.RoleDoctor}
}

func TestMedicalHistoryOnePerFolder(t *testing.T) {
	svc, _, folderID := newTestService(t)
	recorder := nurse()

	first, err := svc.CreateMedicalHistory(context.Background(), folderID,
		&model.CreateMedicalHistoryRequest{Hypertension: true, Diabetes: true}, recorder.ID)
	require.NoError(t, err)
	assert.Equal(t, recorder.ID, first.RecordedBy)
	assert.True(t, first.Hypertension)

	_, err = svc.CreateMedicalHistory(context.Background(), folderID,
		&model.CreateMedicalHistoryRequest{}, recorder.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))

	got, err := svc.GetMedicalHistory(context.Background(), folderID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestUpdateMedicalHistoryReplacesChecklist(t *testing.T) {
	svc, _, folderID := newTestService(t)
	recorder := nurse()

	first, err := svc.CreateMedicalHistory(context.Background(), folderID,
		&model.CreateMedicalHistoryRequest{Hypertension: true}, recorder.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateMedicalHistory(context.Background(), folderID,
		&model.CreateMedicalHistoryRequest{Diabetes: true, Allergies: true})
	require.NoError(t, err)

	assert.Equal(t, first.ID, updated.ID)
	assert.False(t, updated.Hypertension)
	assert.True(t, updated.Diabetes)
	assert.True(t, updated.Allergies)
	assert.Equal(t, recorder.ID, updated.RecordedBy, "recorder survives updates")

	got, err := svc.GetMedicalHistory(context.Background(), folderID)
	require.NoError(t, err)
	assert.True(t, got.Diabetes)
}

func TestUpdateMedicalHistoryRequiresExistingRecord(t *testing.T) {
	svc, _, folderID := newTestService(t)

	_, err := svc.UpdateMedicalHistory(context.Background(), folderID,
		&model.CreateMedicalHistoryRequest{TB: true})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))

	_, err = svc.UpdateMedicalHistory(context.Background(), uuid.New(),
		&model.CreateMedicalHistoryRequest{})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestMissingFolderIs404(t *testing.T) {
	svc, _, _ := newTestService(t)
	ghost := uuid.New()

	_, err := svc.CreateMedicalHistory(context.Background(), ghost,
		&model.CreateMedicalHistoryRequest{}, uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))

	_, err = svc.ListVitalSigns(context.Background(), ghost)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))

	_, err = svc.ListNotes(context.Background(), ghost)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))

	_, err = svc.CreateDiagnosis(context.Background(), ghost,
		&model.CreateDiagnosisRequest{Diagnosis: "malaria"}, uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestDiagnosisAttribution(t *testing.T) {
	svc, _, folderID := newTestService(t)
	recorder := doctor()

	now := time.Now()
	diag, err := svc.CreateDiagnosis(context.Background(), folderID, &model.CreateDiagnosisRequest{
		Date:          now,
		Diagnosis:     "acute malaria",
		AdmissionDate: now,
	}, recorder.ID)
	require.NoError(t, err)

	assert.Equal(t, recorder.ID, diag.RecordedBy)
	assert.Equal(t, recorder.ID, diag.CreatedBy)
	assert.Nil(t, diag.DischargeDate)
}

func TestVitalSignsNewestFirst(t *testing.T) {
	svc, _, folderID := newTestService(t)
	recorder := nurse()

	for _, bp := range []string{"110/70", "120/80", "130/85"} {
		_, err := svc.CreateVitalSigns(context.Background(), folderID,
			&model.CreateVitalSignsRequest{BloodPressure: bp, Pulse: "72"}, recorder.ID)
		require.NoError(t, err)
	}

	vitals, err := svc.ListVitalSigns(context.Background(), folderID)
	require.NoError(t, err)
	require.Len(t, vitals, 3)
	assert.Equal(t, "130/85", vitals[0].BloodPressure)
	assert.Equal(t, "120/80", vitals[1].BloodPressure)
	assert.Equal(t, "110/70", vitals[2].BloodPressure)
}

func TestNoteAuthorRoleMatchesRecorder(t *testing.T) {
	svc, _, folderID := newTestService(t)

	req := &model.CreatePatientNoteRequest{
		Surname:    "Obi",
		OtherNames: "Ada",
		Date:       time.Now(),
		Notes:      "patient stable overnight",
	}

	nurseNote, err := svc.CreateNote(context.Background(), folderID, req, nurse())
	require.NoError(t, err)
	assert.Equal(t, model.RoleNurse, nurseNote.AuthorRole)

	doctorNote, err := svc.CreateNote(context.Background(), folderID, req, doctor())
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, doctorNote.AuthorRole)

	notes, err := svc.ListNotes(context.Background(), folderID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	// newest first
	assert.Equal(t, doctorNote.ID, notes[0].ID)
	assert.Equal(t, nurseNote.ID, notes[1].ID)
}

func TestFolderDeleteCascades(t *testing.T) {
	svc, store, folderID := newTestService(t)
	recorder := nurse()

	_, err := svc.CreateVitalSigns(context.Background(), folderID,
		&model.CreateVitalSignsRequest{BloodPressure: "120/80"}, recorder.ID)
	require.NoError(t, err)
	_, err = svc.CreateNote(context.Background(), folderID, &model.CreatePatientNoteRequest{
		Surname: "Obi", Date: time.Now(), Notes: "admitted",
	}, recorder)
	require.NoError(t, err)

	require.NoError(t, store.CaseFolders().Delete(context.Background(), folderID))

	_, err = svc.ListVitalSigns(context.Background(), folderID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}
