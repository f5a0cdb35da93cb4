package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
	apperrors "github.com/havenmed/records-api/pkg/errors"
)

type caseFolderRepository struct {
	BaseRepository
}

func NewCaseFolderRepository(base BaseRepository) repository.CaseFolderRepository {
	return &caseFolderRepository{base}
}

func (r *caseFolderRepository) Create(ctx context.Context, folder *model.CaseFolder) error {
	query := `
		INSERT INTO case_folders (id, patient_id, folder_number, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	folder.CreatedAt = time.Now()

	_, err := r.GetDB().ExecContext(ctx, query,
		folder.ID,
		folder.PatientID,
		folder.FolderNumber,
		folder.CreatedBy,
		folder.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "case_folders_folder_number_key") {
			return apperrors.Conflict("folder number already in use")
		}
		return fmt.Errorf("failed to create case folder: %w", err)
	}
	return nil
}

func (r *caseFolderRepository) Get(ctx context.Context, id uuid.UUID) (*model.CaseFolder, error) {
	query := `SELECT * FROM case_folders WHERE id = $1`
	var folder model.CaseFolder
	err := r.GetDB().GetContext(ctx, &folder, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("case folder")
		}
		return nil, fmt.Errorf("failed to get case folder: %w", err)
	}
	return &folder, nil
}

func (r *caseFolderRepository) Update(ctx context.Context, folder *model.CaseFolder) error {
	query := `UPDATE case_folders SET folder_number = $1 WHERE id = $2`
	result, err := r.GetDB().ExecContext(ctx, query, folder.FolderNumber, folder.ID)
	if err != nil {
		if isUniqueViolation(err, "case_folders_folder_number_key") {
			return apperrors.Conflict("folder number already in use")
		}
		return fmt.Errorf("failed to update case folder: %w", err)
	}
	return checkAffected(result, "case folder")
}

func (r *caseFolderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.GetDB().ExecContext(ctx, `DELETE FROM case_folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete case folder: %w", err)
	}
	return checkAffected(result, "case folder")
}

func (r *caseFolderRepository) List(ctx context.Context) ([]*model.CaseFolder, error) {
	query := `SELECT * FROM case_folders ORDER BY created_at DESC`
	var folders []*model.CaseFolder
	if err := r.GetDB().SelectContext(ctx, &folders, query); err != nil {
		return nil, fmt.Errorf("failed to list case folders: %w", err)
	}
	return folders, nil
}

func (r *caseFolderRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CaseFolder, error) {
	query := `SELECT * FROM case_folders WHERE patient_id = $1 ORDER BY created_at DESC`
	var folders []*model.CaseFolder
	if err := r.GetDB().SelectContext(ctx, &folders, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list case folders for patient: %w", err)
	}
	return folders, nil
}
