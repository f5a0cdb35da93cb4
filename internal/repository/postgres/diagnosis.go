package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
)

type diagnosisRepository struct {
	BaseRepository
}

func NewDiagnosisRepository(base BaseRepository) repository.DiagnosisRepository {
	return &diagnosisRepository{base}
}

func (r *diagnosisRepository) Create(ctx context.Context, diagnosis *model.DiagnosisAdmission) error {
	query := `
		INSERT INTO diagnosis_admissions (
			id, case_folder_id, date, diagnosis, date_of_admission,
			date_of_discharge, recorded_by, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	diagnosis.CreatedAt = time.Now()

	_, err := r.GetDB().ExecContext(ctx, query,
		diagnosis.ID,
		diagnosis.CaseFolderID,
		diagnosis.Date,
		diagnosis.Diagnosis,
		diagnosis.AdmissionDate,
		diagnosis.DischargeDate,
		diagnosis.RecordedBy,
		diagnosis.CreatedBy,
		diagnosis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create diagnosis: %w", err)
	}
	return nil
}

func (r *diagnosisRepository) ListByCaseFolder(ctx context.Context, caseFolderID uuid.UUID) ([]*model.DiagnosisAdmission, error) {
	query := `
		SELECT * FROM diagnosis_admissions
		WHERE case_folder_id = $1
		ORDER BY created_at DESC
	`
	var diagnoses []*model.DiagnosisAdmission
	if err := r.GetDB().SelectContext(ctx, &diagnoses, query, caseFolderID); err != nil {
		return nil, fmt.Errorf("failed to list diagnoses: %w", err)
	}
	return diagnoses, nil
}
