package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicalHistory is the one-per-folder condition checklist. The unique
// constraint on CaseFolderID is enforced by the database so concurrent
// creates cannot both land.
type MedicalHistory struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	CaseFolderID       uuid.UUID `json:"case_folder_id" db:"case_folder_id"`
	Hypertension       bool      `json:"hypertension" db:"hypertension"`
	Measles            bool      `json:"measles" db:"measles"`
	ChickenPox         bool      `json:"chicken_pox" db:"chicken_pox"`
	TB                 bool      `json:"tb" db:"tb"`
	Diabetes           bool      `json:"diabetes" db:"diabetes"`
	YellowFever        bool      `json:"yellow_fever" db:"yellow_fever"`
	STI                bool      `json:"sti" db:"sti"`
	KidneyDisease      bool      `json:"kidney_disease" db:"kidney_disease"`
	LiverDisease       bool      `json:"liver_disease" db:"liver_disease"`
	Epilepsy           bool      `json:"epilepsy" db:"epilepsy"`
	SCDisease          bool      `json:"sc_disease" db:"sc_disease"`
	GDUlcer            bool      `json:"gd_ulcer" db:"gd_ulcer"`
	RTAInjury          bool      `json:"rta_injury" db:"rta_injury"`
	AlcoholSmoking     bool      `json:"alcohol_smoking" db:"alcohol_smoking"`
	PreviousOps        bool      `json:"previous_ops" db:"previous_ops"`
	Schistosomiasis    bool      `json:"schistosomiasis" db:"schistosomiasis"`
	RespiratoryDisease bool      `json:"respiratory_disease" db:"respiratory_disease"`
	MentalDisease      bool      `json:"mental_disease" db:"mental_disease"`
	HIV                bool      `json:"hiv" db:"hiv"`
	Allergies          bool      `json:"allergies" db:"allergies"`
	RecordedBy         uuid.UUID `json:"recorded_by" db:"recorded_by"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// CreateMedicalHistoryRequest carries the condition flags. All default
// to false when omitted.
type CreateMedicalHistoryRequest struct {
	Hypertension       bool `json:"hypertension"`
	Measles            bool `json:"measles"`
	ChickenPox         bool `json:"chicken_pox"`
	TB                 bool `json:"tb"`
	Diabetes           bool `json:"diabetes"`
	YellowFever        bool `json:"yellow_fever"`
	STI                bool `json:"sti"`
	KidneyDisease      bool `json:"kidney_disease"`
	LiverDisease       bool `json:"liver_disease"`
	Epilepsy           bool `json:"epilepsy"`
	SCDisease          bool `json:"sc_disease"`
	GDUlcer            bool `json:"gd_ulcer"`
	RTAInjury          bool `json:"rta_injury"`
	AlcoholSmoking     bool `json:"alcohol_smoking"`
	PreviousOps        bool `json:"previous_ops"`
	Schistosomiasis    bool `json:"schistosomiasis"`
	RespiratoryDisease bool `json:"respiratory_disease"`
	MentalDisease      bool `json:"mental_disease"`
	HIV                bool `json:"hiv"`
	Allergies          bool `json:"allergies"`
}
