package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
)

type vitalSignsRepository struct {
	BaseRepository
}

func NewVitalSignsRepository(base BaseRepository) repository.VitalSignsRepository {
	return &vitalSignsRepository{base}
}

func (r *vitalSignsRepository) Create(ctx context.Context, vitals *model.VitalSigns) error {
	query := `
		INSERT INTO vital_signs (
			id, case_folder_id, blood_pressure, pulse, weight, height,
			urine_albumin, urine_sugar, recorded_by, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	vitals.RecordedAt = time.Now()

	_, err := r.GetDB().ExecContext(ctx, query,
		vitals.ID,
		vitals.CaseFolderID,
		vitals.BloodPressure,
		vitals.Pulse,
		vitals.Weight,
		vitals.Height,
		vitals.UrineAlbumin,
		vitals.UrineSugar,
		vitals.RecordedBy,
		vitals.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create vital signs: %w", err)
	}
	return nil
}

func (r *vitalSignsRepository) ListByCaseFolder(ctx context.Context, caseFolderID uuid.UUID) ([]*model.VitalSigns, error) {
	query := `
		SELECT * FROM vital_signs
		WHERE case_folder_id = $1
		ORDER BY recorded_at DESC
	`
	var vitals []*model.VitalSigns
	if err := r.GetDB().SelectContext(ctx, &vitals, query, caseFolderID); err != nil {
		return nil, fmt.Errorf("failed to list vital signs: %w", err)
	}
	return vitals, nil
}
