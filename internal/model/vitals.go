package model

import (
	"time"

	"github.com/google/uuid"
)

// VitalSigns is a point-in-time reading. RecordedAt is server-stamped
// and the row is never updated after creation.
type VitalSigns struct {
	ID            uuid.UUID `json:"id" db:"id"`
	CaseFolderID  uuid.UUID `json:"case_folder_id" db:"case_folder_id"`
	BloodPressure string    `json:"blood_pressure" db:"blood_pressure"`
	Pulse         string    `json:"pulse" db:"pulse"`
	Weight        string    `json:"weight" db:"weight"`
	Height        string    `json:"height" db:"height"`
	UrineAlbumin  string    `json:"urine_albumin" db:"urine_albumin"`
	UrineSugar    string    `json:"urine_sugar" db:"urine_sugar"`
	RecordedBy    uuid.UUID `json:"recorded_by" db:"recorded_by"`
	RecordedAt    time.Time `json:"recorded_at" db:"recorded_at"`
}

// CreateVitalSignsRequest represents vitals creation parameters
type CreateVitalSignsRequest struct {
	BloodPressure string `json:"blood_pressure" binding:"required,bloodpressure"`
	Pulse         string `json:"pulse" binding:"required,max=10"`
	Weight        string `json:"weight" binding:"required,max=10"`
	Height        string `json:"height" binding:"required,max=10"`
	UrineAlbumin  string `json:"urine_albumin" binding:"required,max=20"`
	UrineSugar    string `json:"urine_sugar" binding:"required,max=20"`
}
