package patient

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository/memory"
	apperrors "github.com/havenmed/records-api/pkg/errors"
)

func createRequest() *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		FirstName:     "Ada",
		LastName:      "Obi",
		DOB:           "2001-04-12",
		Gender:        "F",
		MatricNo:      "HAV/20/1234",
		JambNo:        "20345678AB",
		Address:       "12 College Road",
		Phone:         "08012345678",
		Email:         "ada.obi@example.com",
		XrayNo:        "XR-0042",
		Religion:      "CHRISTIAN",
		StateOfOrigin: "Enugu",
		Tribe:         "Igbo",
	}
}

func TestCreateStampsCreator(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())
	creator := uuid.New()

	patient, err := svc.Create(context.Background(), createRequest(), creator)
	require.NoError(t, err)
	assert.Equal(t, creator, patient.CreatedBy)
	assert.Equal(t, 2001, patient.DOB.Year())
	assert.NotEqual(t, uuid.Nil, patient.ID)
}

func TestCreateRejectsBadDOB(t *testing.T) {
	svc := NewService(memory.NewStore().Patients())

	req := createRequest()
	req.DOB = "12/04/2001"
	_, err := svc.Create(context.Background(), req, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestUpdateNeverTouchesAttribution(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())
	creator := uuid.New()

	patient, err := svc.Create(context.Background(), createRequest(), creator)
	require.NoError(t, err)

	newName := "Adaeze"
	updated, err := svc.Update(context.Background(), patient.ID, &model.UpdatePatientRequest{
		FirstName: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Adaeze", updated.FirstName)
	assert.Equal(t, "Obi", updated.LastName)
	assert.Equal(t, creator, updated.CreatedBy)
}

func TestDeleteCascadesToFolders(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())

	patient, err := svc.Create(context.Background(), createRequest(), uuid.New())
	require.NoError(t, err)

	folder := &model.CaseFolder{
		ID:           uuid.New(),
		PatientID:    patient.ID,
		FolderNumber: "HAV/2026/0001",
		CreatedBy:    uuid.New(),
	}
	require.NoError(t, store.CaseFolders().Create(context.Background(), folder))

	require.NoError(t, svc.Delete(context.Background(), patient.ID))

	_, err = store.CaseFolders().Get(context.Background(), folder.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestListNewestFirst(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())

	first, err := svc.Create(context.Background(), createRequest(), uuid.New())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), createRequest(), uuid.New())
	require.NoError(t, err)

	patients, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, second.ID, patients[0].ID)
	assert.Equal(t, first.ID, patients[1].ID)
}
