package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/havenmed/records-api/internal/email"
	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
	"github.com/havenmed/records-api/pkg/auth"
	apperrors "github.com/havenmed/records-api/pkg/errors"
	"github.com/havenmed/records-api/pkg/security"
)

// Login failure messages. Unknown username and wrong password share one
// message so responses cannot be used to enumerate accounts.
const (
	msgInvalidCredentials = "invalid username or password"
	msgAccountDisabled    = "account disabled, contact admin"
	msgNotAuthorized      = "account not yet authorized by an admin"
	msgInvalidToken       = "invalid token"
	msgExpiredToken       = "token expired"
)

type Service struct {
	userRepo  repository.UserRepository
	blacklist repository.TokenBlacklist
	jwtSvc    auth.JWTService
	hasher    security.PasswordHasher
	emailSvc  email.Service
}

func NewService(userRepo repository.UserRepository, blacklist repository.TokenBlacklist,
	jwtSvc auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service) *Service {
	return &Service{
		userRepo:  userRepo,
		blacklist: blacklist,
		jwtSvc:    jwtSvc,
		hasher:    hasher,
		emailSvc:  emailSvc,
	}
}

// Register creates a staff account. The account starts unauthorized and
// cannot log in until an admin approves it.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Phone:        req.Phone,
		PasswordHash: hash,
		Authorized:   false,
		Active:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and the authorization gate, then issues the
// access/refresh token pair. The refresh token is persisted on the
// account record.
func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	return s.issueTokens(ctx, user)
}

// LoginWithCode consumes a one-time login code in place of a password
func (s *Service) LoginWithCode(ctx context.Context, username, code string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	if user.LoginCode == nil || *user.LoginCode != code {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	// codes are single use
	if err := s.userRepo.SetLoginCode(ctx, user.ID, nil); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// RequestLoginCode generates a fresh one-time code and emails it
func (s *Service) RequestLoginCode(ctx context.Context, username string) error {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// do not reveal whether the account exists
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := generateLoginCode()
	if err != nil {
		return fmt.Errorf("failed to generate login code: %w", err)
	}

	if err := s.userRepo.SetLoginCode(ctx, user.ID, &code); err != nil {
		return err
	}

	if err := s.emailSvc.SendLoginCode(ctx, user.Email, code); err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to email login code")
	}
	return nil
}

// Logout revokes the presented refresh token. A token can only be
// revoked once; a second logout with the same token fails.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return apperrors.BadRequest(msgInvalidToken, err)
	}

	ok, err := s.blacklist.Blacklist(ctx, refreshToken, time.Until(claims.ExpiresAt.Time))
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.BadRequest(msgInvalidToken, nil)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return apperrors.BadRequest(msgInvalidToken, err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil &&
		!apperrors.IsCode(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

// Refresh rotates the refresh token: the presented token is revoked and
// a new pair is issued. Two concurrent refreshes of the same token
// cannot both succeed.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.Unauthorized(msgExpiredToken)
		}
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidToken)
		}
		return nil, err
	}

	// rotation: revoke the old token before minting the new pair
	ok, err := s.blacklist.Blacklist(ctx, refreshToken, time.Until(claims.ExpiresAt.Time))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}

	return s.issueTokens(ctx, user)
}

func (s *Service) issueTokens(ctx context.Context, user *model.User) (*model.TokenResponse, error) {
	if !user.Active {
		return nil, apperrors.Unauthorized(msgAccountDisabled)
	}
	if !user.Authorized {
		return nil, apperrors.Unauthorized(msgNotAuthorized)
	}

	accessToken, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      user.Profile(),
	}, nil
}

func generateLoginCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
