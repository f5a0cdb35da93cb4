package casefolder

import (
	"context"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
	apperrors "github.com/havenmed/records-api/pkg/errors"
)

type Service struct {
	repo        repository.CaseFolderRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.CaseFolderRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{repo: repo, patientRepo: patientRepo}
}

// Create opens a folder under an existing patient. The creator ID is
// taken from the authenticated session.
func (s *Service) Create(ctx context.Context, req *model.CreateCaseFolderRequest, createdBy uuid.UUID) (*model.CaseFolder, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient ID", err)
	}

	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
	}

	folder := &model.CaseFolder{
		ID:           uuid.New(),
		PatientID:    patientID,
		FolderNumber: req.FolderNumber,
		CreatedBy:    createdBy,
	}

	if err := s.repo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.CaseFolder, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.CaseFolder, error) {
	return s.repo.List(ctx)
}

// ListByPatient returns the patient's folders, newest first
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CaseFolder, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCaseFolderRequest) (*model.CaseFolder, error) {
	folder, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FolderNumber != nil {
		folder.FolderNumber = *req.FolderNumber
	}

	if err := s.repo.Update(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
