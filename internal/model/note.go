package model

import (
	"time"

	"github.com/google/uuid"
)

// PatientNote is a free-text clinical note. AuthorRole mirrors the
// recording account's actual role at write time; the client cannot
// choose it.
type PatientNote struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CaseFolderID uuid.UUID `json:"case_folder_id" db:"case_folder_id"`
	Surname      string    `json:"surname" db:"surname"`
	OtherNames   string    `json:"other_names" db:"other_names"`
	Date         time.Time `json:"date" db:"date"`
	Notes        string    `json:"notes" db:"notes"`
	AuthorRole   Role      `json:"author_role" db:"author_role"`
	RecordedBy   uuid.UUID `json:"recorded_by" db:"recorded_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreatePatientNoteRequest represents note creation parameters. Any
// client-supplied author role is ignored.
type CreatePatientNoteRequest struct {
	Surname    string    `json:"surname" binding:"required,max=100"`
	OtherNames string    `json:"other_names" binding:"required,max=200"`
	Date       time.Time `json:"date" binding:"required"`
	Notes      string    `json:"notes" binding:"required"`
}
