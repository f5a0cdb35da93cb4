package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/havenmed/records-api/internal/email"
	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
)

type Service struct {
	repo     repository.UserRepository
	emailSvc email.Service
}

func NewService(repo repository.UserRepository, emailSvc email.Service) *Service {
	return &Service{repo: repo, emailSvc: emailSvc}
}

// Authorize flips the authorization flag so the account can log in, and
// notifies the owner by email. Email failure does not undo the flag.
func (s *Service) Authorize(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if err := s.repo.SetAuthorized(ctx, id, true); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendAccountAuthorized(ctx, user.Email, user.FirstName); err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("failed to send authorization email")
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}
