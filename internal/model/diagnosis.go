package model

import (
	"time"

	"github.com/google/uuid"
)

// DiagnosisAdmission records a diagnosis together with the admission it
// led to. A nil DischargeDate means the patient is still admitted.
type DiagnosisAdmission struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	CaseFolderID  uuid.UUID  `json:"case_folder_id" db:"case_folder_id"`
	Date          time.Time  `json:"date" db:"date"`
	Diagnosis     string     `json:"diagnosis" db:"diagnosis"`
	AdmissionDate time.Time  `json:"date_of_admission" db:"date_of_admission"`
	DischargeDate *time.Time `json:"date_of_discharge" db:"date_of_discharge"`
	RecordedBy    uuid.UUID  `json:"recorded_by" db:"recorded_by"`
	CreatedBy     uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// CreateDiagnosisRequest represents diagnosis creation parameters
type CreateDiagnosisRequest struct {
	Date          time.Time  `json:"date" binding:"required"`
	Diagnosis     string     `json:"diagnosis" binding:"required"`
	AdmissionDate time.Time  `json:"date_of_admission" binding:"required"`
	DischargeDate *time.Time `json:"date_of_discharge"`
}
