package patient

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
	apperrors "github.com/havenmed/records-api/pkg/errors"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

// Create builds a patient from the request and stamps the creator. The
// caller ID comes from the authenticated session, never the body.
func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest, createdBy uuid.UUID) (*model.Patient, error) {
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return nil, apperrors.BadRequest("invalid date of birth", err)
	}

	patient := &model.Patient{
		ID:            uuid.New(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DOB:           dob,
		Gender:        req.Gender,
		MatricNo:      req.MatricNo,
		JambNo:        req.JambNo,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		XrayNo:        req.XrayNo,
		Religion:      req.Religion,
		StateOfOrigin: req.StateOfOrigin,
		Tribe:         req.Tribe,
		CreatedBy:     createdBy,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}

// Update applies the provided fields. Attribution is untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return nil, apperrors.BadRequest("invalid date of birth", err)
		}
		patient.DOB = dob
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.MatricNo != nil {
		patient.MatricNo = *req.MatricNo
	}
	if req.JambNo != nil {
		patient.JambNo = *req.JambNo
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.XrayNo != nil {
		patient.XrayNo = *req.XrayNo
	}
	if req.Religion != nil {
		patient.Religion = *req.Religion
	}
	if req.StateOfOrigin != nil {
		patient.StateOfOrigin = *req.StateOfOrigin
	}
	if req.Tribe != nil {
		patient.Tribe = *req.Tribe
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Delete removes the patient and all dependent records
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
