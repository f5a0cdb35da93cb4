package model

import (
	"time"

	"github.com/google/uuid"
)

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Religion constants
const (
	ReligionChristian = "CHRISTIAN"
	ReligionMuslim    = "MUSLIM"
	ReligionOther     = "OTHER"
)

// Patient holds the demographic record created by a records officer.
// CreatedBy is stamped from the authenticated caller and never updated.
type Patient struct {
	ID            uuid.UUID `json:"id" db:"id"`
	FirstName     string    `json:"first_name" db:"first_name"`
	LastName      string    `json:"last_name" db:"last_name"`
	DOB           time.Time `json:"dob" db:"dob"`
	Gender        string    `json:"gender" db:"gender"`
	MatricNo      string    `json:"matric_no" db:"matric_no"`
	JambNo        string    `json:"jamb_no" db:"jamb_no"`
	Address       string    `json:"address" db:"address"`
	Phone         string    `json:"phone" db:"phone"`
	Email         string    `json:"email" db:"email"`
	XrayNo        string    `json:"xray_no" db:"xray_no"`
	Religion      string    `json:"religion" db:"religion"`
	StateOfOrigin string    `json:"state_of_origin" db:"state_of_origin"`
	Tribe         string    `json:"tribe" db:"tribe"`
	CreatedBy     uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CreatePatientRequest represents patient creation parameters
type CreatePatientRequest struct {
	FirstName     string `json:"first_name" binding:"required,max=100"`
	LastName      string `json:"last_name" binding:"required,max=100"`
	DOB           string `json:"dob" binding:"required,datetime=2006-01-02"`
	Gender        string `json:"gender" binding:"required,oneof=M F"`
	MatricNo      string `json:"matric_no" binding:"required,max=15"`
	JambNo        string `json:"jamb_no" binding:"required,max=15"`
	Address       string `json:"address" binding:"required"`
	Phone         string `json:"phone" binding:"required,max=15"`
	Email         string `json:"email" binding:"omitempty,email"`
	XrayNo        string `json:"xray_no" binding:"required,max=15"`
	Religion      string `json:"religion" binding:"required,oneof=CHRISTIAN MUSLIM OTHER"`
	StateOfOrigin string `json:"state_of_origin" binding:"required,max=50"`
	Tribe         string `json:"tribe" binding:"required,max=60"`
}

// UpdatePatientRequest represents patient update parameters
type UpdatePatientRequest struct {
	FirstName     *string `json:"first_name" binding:"omitempty,max=100"`
	LastName      *string `json:"last_name" binding:"omitempty,max=100"`
	DOB           *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Gender        *string `json:"gender" binding:"omitempty,oneof=M F"`
	MatricNo      *string `json:"matric_no" binding:"omitempty,max=15"`
	JambNo        *string `json:"jamb_no" binding:"omitempty,max=15"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone" binding:"omitempty,max=15"`
	Email         *string `json:"email" binding:"omitempty,email"`
	XrayNo        *string `json:"xray_no" binding:"omitempty,max=15"`
	Religion      *string `json:"religion" binding:"omitempty,oneof=CHRISTIAN MUSLIM OTHER"`
	StateOfOrigin *string `json:"state_of_origin" binding:"omitempty,max=50"`
	Tribe         *string `json:"tribe" binding:"omitempty,max=60"`
}
