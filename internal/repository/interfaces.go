package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles staff account storage
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
		SetAuthorized(ctx context.Context, id uuid.UUID, authorized bool) error
		SetLoginCode(ctx context.Context, id uuid.UUID, code *string) error
		List(ctx context.Context) ([]*model.User, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Patient, error)
	}

	CaseFolderRepository interface {
		Create(ctx context.Context, folder *model.CaseFolder) error
		Get(ctx context.Context, id uuid.UUID) (*model.CaseFolder, error)
		Update(ctx context.Context, folder *model.CaseFolder) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.CaseFolder, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.CaseFolder, error)
	}

	MedicalHistoryRepository interface {
		Create(ctx context.Context, history *model.MedicalHistory) error
		GetByCaseFolder(ctx context.Context, caseFolderID uuid.UUID) (*model.MedicalHistory, error)
		Update(ctx context.Context, history *model.MedicalHistory) error
	}

	DiagnosisRepository interface {
		Create(ctx context.Context, diagnosis *model.DiagnosisAdmission) error
		ListByCaseFolder(ctx context.Context, caseFolderID uuid.UUID) ([]*model.DiagnosisAdmission, error)
	}

	VitalSignsRepository interface {
		Create(ctx context.Context, vitals *model.VitalSigns) error
		ListByCaseFolder(ctx context.Context, caseFolderID uuid.UUID) ([]*model.VitalSigns, error)
	}

	PatientNoteRepository interface {
		Create(ctx context.Context, note *model.PatientNote) error
		ListByCaseFolder(ctx context.Context, caseFolderID uuid.UUID) ([]*model.PatientNote, error)
	}

	// TokenBlacklist revokes refresh tokens. Blacklist is check-and-set:
	// it returns false when the token was already blacklisted, so two
	// concurrent revocations cannot both succeed.
	TokenBlacklist interface {
		Blacklist(ctx context.Context, token string, ttl time.Duration) (bool, error)
		IsBlacklisted(ctx context.Context, token string) (bool, error)
	}
)
