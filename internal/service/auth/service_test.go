package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository/memory"
	"github.com/havenmed/records-api/pkg/auth"
	apperrors "github.com/havenmed/records-api/pkg/errors"
	"github.com/havenmed/records-api/pkg/security"
)

type fakeEmail struct {
	authorized []string
	codes      map[string]string
}

func newFakeEmail() *fakeEmail {
	return &fakeEmail{codes: make(map[string]string)}
}

func (f *fakeEmail) SendAccountAuthorized(_ context.Context, to, _ string) error {
	f.authorized = append(f.authorized, to)
	return nil
}

func (f *fakeEmail) SendLoginCode(_ context.Context, to, code string) error {
	f.codes[to] = code
	return nil
}

func newTestService(t *testing.T) (*Service, *memory.Store, *fakeEmail) {
	t.Helper()
	store := memory.NewStore()
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "records-api-test",
	})
	emails := newFakeEmail()
	svc := NewService(store.Users(), memory.NewTokenBlacklist(), jwtSvc,
		security.NewBcryptHasher(4), emails)
	return svc, store, emails
}

func registerRequest(username string) *model.RegisterRequest {
	return &model.RegisterRequest{
		Username:        username,
		Email:           username + "@example.com",
		FirstName:       "Test",
		LastName:        "Nurse",
		Role:            model.RoleNurse,
		Phone:           "08012345678",
		Password:        "password123",
		PasswordConfirm: "password123",
	}
}

func registerAndAuthorize(t *testing.T, svc *Service, store *memory.Store, username string) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), registerRequest(username))
	require.NoError(t, err)
	require.NoError(t, store.Users().SetAuthorized(context.Background(), user.ID, true))
	return user
}

func TestRegisterStartsUnauthorized(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.Register(context.Background(), registerRequest("nurse1"))
	require.NoError(t, err)
	assert.False(t, user.Authorized)
	assert.True(t, user.Active)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// valid credentials alone must not log in
	_, err = svc.Login(context.Background(), "nurse1", "password123")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
	assert.Contains(t, err.Error(), "not yet authorized")
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := registerRequest("nurse1")
	req.Role = model.Role("SURGEON")
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerRequest("nurse1"))
	require.NoError(t, err)

	dup := registerRequest("nurse1")
	dup.Email = "other@example.com"
	_, err = svc.Register(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, store, _ := newTestService(t)
	registerAndAuthorize(t, svc, store, "nurse1")

	_, errUnknown := svc.Login(context.Background(), "ghost", "password123")
	_, errWrongPass := svc.Login(context.Background(), "nurse1", "wrongpassword")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := registerAndAuthorize(t, svc, store, "nurse1")

	resp, err := svc.Login(context.Background(), "nurse1", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.Username, resp.Profile.Username)

	// the refresh token is persisted on the account
	stored, err := store.Users().GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, resp.RefreshToken, *stored.RefreshToken)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := registerAndAuthorize(t, svc, store, "nurse1")

	user.Active = false
	require.NoError(t, store.Users().Update(context.Background(), user))

	_, err := svc.Login(context.Background(), "nurse1", "password123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestLogoutRevokesOnce(t *testing.T) {
	svc, store, _ := newTestService(t)
	registerAndAuthorize(t, svc, store, "nurse1")

	resp, err := svc.Login(context.Background(), "nurse1", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))

	// second logout with the same token fails
	err = svc.Logout(context.Background(), resp.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))

	// the revoked token can no longer refresh
	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestLogoutGarbageToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Logout(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, store, _ := newTestService(t)
	registerAndAuthorize(t, svc, store, "nurse1")

	first, err := svc.Login(context.Background(), "nurse1", "password123")
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// the consumed token is dead: replaying it fails
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))

	// the new token still works
	_, err = svc.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, store, _ := newTestService(t)
	registerAndAuthorize(t, svc, store, "nurse1")

	resp, err := svc.Login(context.Background(), "nurse1", "password123")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), resp.AccessToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestLoginCodeFlow(t *testing.T) {
	svc, store, emails := newTestService(t)
	user := registerAndAuthorize(t, svc, store, "nurse1")

	require.NoError(t, svc.RequestLoginCode(context.Background(), "nurse1"))
	code, ok := emails.codes[user.Email]
	require.True(t, ok)
	require.Len(t, code, 6)

	resp, err := svc.LoginWithCode(context.Background(), "nurse1", code)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// codes are single use
	_, err = svc.LoginWithCode(context.Background(), "nurse1", code)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestRequestLoginCodeUnknownUserIsSilent(t *testing.T) {
	svc, _, emails := newTestService(t)

	require.NoError(t, svc.RequestLoginCode(context.Background(), "ghost"))
	assert.Empty(t, emails.codes)
}
