package model

import (
	"time"

	"github.com/google/uuid"
)

// CaseFolder groups one clinical episode for a patient. A patient may
// have several folders; deleting the patient removes them all.
type CaseFolder struct {
	ID           uuid.UUID `json:"id" db:"id"`
	PatientID    uuid.UUID `json:"patient_id" db:"patient_id"`
	FolderNumber string    `json:"folder_number" db:"folder_number"`
	CreatedBy    uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateCaseFolderRequest represents case folder creation parameters
type CreateCaseFolderRequest struct {
	PatientID    string `json:"patient_id" binding:"required,uuid"`
	FolderNumber string `json:"folder_number" binding:"required,max=50"`
}

// UpdateCaseFolderRequest represents case folder update parameters
type UpdateCaseFolderRequest struct {
	FolderNumber *string `json:"folder_number" binding:"omitempty,max=50"`
}
