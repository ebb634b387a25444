package service

import (
	"context"
	"testing"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/config"
	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *stubProfileRepo, *model.UserProfile) {
	t.Helper()
	identities := newStubIdentityRepo()
	profiles := newStubProfileRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1, JWTRefreshHours: 24}

	hash, err := bcrypt.GenerateFromPassword([]byte("secret99"), bcrypt.MinCost)
	require.NoError(t, err)
	ident := &model.AuthIdentity{Email: "staff@onnuri.local", PasswordHash: string(hash)}
	require.NoError(t, identities.Create(context.Background(), ident))

	profile := &model.UserProfile{UserID: ident.ID, DisplayName: "직원", Role: model.RoleStaff, Active: true}
	require.NoError(t, profiles.Upsert(context.Background(), profile))

	return NewAuthService(identities, profiles, cfg), profiles, profile
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "Staff@Onnuri.Local", Password: "secret99"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "직원", resp.User.DisplayName)

	claims, err := svc.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, model.RoleStaff, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "staff@onnuri.local", Password: "wrong"})
	require.Error(t, err)
	ae := apierror.From(err)
	assert.Equal(t, apierror.CodeUnauthorized, ae.Code)
	assert.Equal(t, "not authenticated", ae.Message)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@onnuri.local", Password: "secret99"})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeUnauthorized, apierror.From(err).Code)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, profiles, profile := newAuthFixture(t)
	require.NoError(t, profiles.SetActive(context.Background(), profile.UserID, false))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "staff@onnuri.local", Password: "secret99"})
	require.Error(t, err)
	ae := apierror.From(err)
	assert.Equal(t, apierror.CodeForbidden, ae.Code)
	assert.Equal(t, "inactive user", ae.Message)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "staff@onnuri.local", Password: "secret99"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "staff@onnuri.local", Password: "secret99"})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.Refresh(ctx, login.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apierror.CodeUnauthorized, apierror.From(err).Code)
}

func TestRefreshBlockedAfterDeactivation(t *testing.T) {
	svc, profiles, profile := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "staff@onnuri.local", Password: "secret99"})
	require.NoError(t, err)

	require.NoError(t, profiles.SetActive(ctx, profile.UserID, false))
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apierror.CodeForbidden, apierror.From(err).Code)
}
