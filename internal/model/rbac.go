package model

// Resource identifies a protected resource type
type Resource string

const (
	ResourcePatient            Resource = "patient"
	ResourceCaseFolder         Resource = "case_folder"
	ResourceMedicalHistory     Resource = "medical_history"
	ResourceDiagnosisAdmission Resource = "diagnosis_admission"
	ResourceVitalSigns         Resource = "vital_signs"
	ResourcePatientNote        Resource = "patient_note"
)

// Operation identifies an action on a resource
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpList   Operation = "list"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)
