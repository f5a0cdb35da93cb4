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

type medicalHistoryRepository struct {
	BaseRepository
}

func NewMedicalHistoryRepository(base BaseRepository) repository.MedicalHistoryRepository {
	return &medicalHistoryRepository{base}
}

// Create relies on the unique index on case_folder_id to serialize
// concurrent creates; the loser gets a Conflict, never an overwrite.
func (r *medicalHistoryRepository) Create(ctx context.Context, history *model.MedicalHistory) error {
	query := `
		INSERT INTO medical_histories (
			id, case_folder_id, hypertension, measles, chicken_pox, tb,
			diabetes, yellow_fever, sti, kidney_disease, liver_disease,
			epilepsy, sc_disease, gd_ulcer, rta_injury, alcohol_smoking,
			previous_ops, schistosomiasis, respiratory_disease,
			mental_disease, hiv, allergies, recorded_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
	`
	now := time.Now()
	history.CreatedAt = now
	history.UpdatedAt = now

	_, err := r.GetDB().ExecContext(ctx, query,
		history.ID,
		history.CaseFolderID,
		history.Hypertension,
		history.Measles,
		history.ChickenPox,
		history.TB,
		history.Diabetes,
		history.YellowFever,
		history.STI,
		history.KidneyDisease,
		history.LiverDisease,
		history.Epilepsy,
		history.SCDisease,
		history.GDUlcer,
		history.RTAInjury,
		history.AlcoholSmoking,
		history.PreviousOps,
		history.Schistosomiasis,
		history.RespiratoryDisease,
		history.MentalDisease,
		history.HIV,
		history.Allergies,
		history.RecordedBy,
		history.CreatedAt,
		history.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "medical_histories_case_folder_id_key") {
			return apperrors.Conflict("medical history already exists for this case folder")
		}
		return fmt.Errorf("failed to create medical history: %w", err)
	}
	return nil
}

func (r *medicalHistoryRepository) GetByCaseFolder(ctx context.Context, caseFolderID uuid.UUID) (*model.MedicalHistory, error) {
	query := `SELECT * FROM medical_histories WHERE case_folder_id = $1`
	var history model.MedicalHistory
	err := r.GetDB().GetContext(ctx, &history, query, caseFolderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("medical history")
		}
		return nil, fmt.Errorf("failed to get medical history: %w", err)
	}
	return &history, nil
}

func (r *medicalHistoryRepository) Update(ctx context.Context, history *model.MedicalHistory) error {
	// recorded_by is immutable after creation
	query := `
		UPDATE medical_histories
		SET hypertension = $1, measles = $2, chicken_pox = $3, tb = $4,
			diabetes = $5, yellow_fever = $6, sti = $7, kidney_disease = $8,
			liver_disease = $9, epilepsy = $10, sc_disease = $11,
			gd_ulcer = $12, rta_injury = $13, alcohol_smoking = $14,
			previous_ops = $15, schistosomiasis = $16,
			respiratory_disease = $17, mental_disease = $18, hiv = $19,
			allergies = $20, updated_at = $21
		WHERE case_folder_id = $22
	`
	history.UpdatedAt = time.Now()

	result, err := r.GetDB().ExecContext(ctx, query,
		history.Hypertension,
		history.Measles,
		history.ChickenPox,
		history.TB,
		history.Diabetes,
		history.YellowFever,
		history.STI,
		history.KidneyDisease,
		history.LiverDisease,
		history.Epilepsy,
		history.SCDisease,
		history.GDUlcer,
		history.RTAInjury,
		history.AlcoholSmoking,
		history.PreviousOps,
		history.Schistosomiasis,
		history.RespiratoryDisease,
		history.MentalDisease,
		history.HIV,
		history.Allergies,
		history.UpdatedAt,
		history.CaseFolderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medical history: %w", err)
	}
	return checkAffected(result, "medical history")
}
