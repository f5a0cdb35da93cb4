package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
	apperrors "github.com/havenmed/records-api/pkg/errors"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, first_name, last_name, dob, gender, matric_no, jamb_no,
			address, phone, email, xray_no, religion, state_of_origin,
			tribe, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	patient.CreatedAt = time.Now()

	_, err := r.GetDB().ExecContext(ctx, query,
		patient.ID,
		patient.FirstName,
		patient.LastName,
		patient.DOB,
		patient.Gender,
		patient.MatricNo,
		patient.JambNo,
		patient.Address,
		patient.Phone,
		patient.Email,
		patient.XrayNo,
		patient.Religion,
		patient.StateOfOrigin,
		patient.Tribe,
		patient.CreatedBy,
		patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	err := r.GetDB().GetContext(ctx, &patient, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	// created_by and created_at are immutable after creation
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, dob = $3, gender = $4,
			matric_no = $5, jamb_no = $6, address = $7, phone = $8,
			email = $9, xray_no = $10, religion = $11,
			state_of_origin = $12, tribe = $13
		WHERE id = $14
	`
	result, err := r.GetDB().ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.DOB,
		patient.Gender,
		patient.MatricNo,
		patient.JambNo,
		patient.Address,
		patient.Phone,
		patient.Email,
		patient.XrayNo,
		patient.Religion,
		patient.StateOfOrigin,
		patient.Tribe,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return checkAffected(result, "patient")
}

// Delete removes the patient and, through ON DELETE CASCADE, every case
// folder and clinical record under it. The transaction guarantees all
// or nothing.
func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete patient: %w", err)
		}
		return checkAffected(result, "patient")
	})
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT * FROM patients ORDER BY created_at DESC`
	var patients []*model.Patient
	if err := r.GetDB().SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
