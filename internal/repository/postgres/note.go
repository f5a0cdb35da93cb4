package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
)

type patientNoteRepository struct {
	BaseRepository
}

func NewPatientNoteRepository(base BaseRepository) repository.PatientNoteRepository {
	return &patientNoteRepository{base}
}

func (r *patientNoteRepository) Create(ctx context.Context, note *model.PatientNote) error {
	query := `
		INSERT INTO patient_notes (
			id, case_folder_id, surname, other_names, date, notes,
			author_role, recorded_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	note.CreatedAt = time.Now()

	_, err := r.GetDB().ExecContext(ctx, query,
		note.ID,
		note.CaseFolderID,
		note.Surname,
		note.OtherNames,
		note.Date,
		note.Notes,
		note.AuthorRole,
		note.RecordedBy,
		note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient note: %w", err)
	}
	return nil
}

func (r *patientNoteRepository) ListByCaseFolder(ctx context.Context, caseFolderID uuid.UUID) ([]*model.PatientNote, error) {
	query := `
		SELECT * FROM patient_notes
		WHERE case_folder_id = $1
		ORDER BY created_at DESC
	`
	var notes []*model.PatientNote
	if err := r.GetDB().SelectContext(ctx, &notes, query, caseFolderID); err != nil {
		return nil, fmt.Errorf("failed to list patient notes: %w", err)
	}
	return notes, nil
}
