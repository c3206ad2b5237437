package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecheck/internal/config"
)

func newTestAuth(now *time.Time) *AuthService {
	svc := NewAuthService(config.AuthConfig{
		AdminUsername:      "admin",
		AdminPassword:      "hunter2",
		JWTSecret:          "test-secret",
		RespondentTokenTTL: time.Hour,
	})
	svc.now = func() time.Time { return *now }
	return svc
}

func TestAuthService_Login(t *testing.T) {
	now := selectionNow
	svc := newTestAuth(&now)

	resp, err := svc.Login("admin", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateAdminToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.AdminID, claims.AdminID)

	_, err = svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RespondentToken(t *testing.T) {
	now := selectionNow
	svc := newTestAuth(&now)

	resp, err := svc.IssueRespondentToken("user-9")
	require.NoError(t, err)
	assert.Equal(t, selectionNow.Add(time.Hour).Unix(), resp.ExpiresAt)

	claims, err := svc.ValidateRespondentToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.UserID)

	// A respondent token never passes as an admin token, and vice versa.
	_, err = svc.ValidateAdminToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	login, err := svc.Login("admin", "hunter2")
	require.NoError(t, err)
	_, err = svc.ValidateRespondentToken(login.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	now = now.Add(2 * time.Hour)
	_, err = svc.ValidateRespondentToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.IssueRespondentToken("")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAuthService_RejectsForeignSecret(t *testing.T) {
	now := selectionNow
	svc := newTestAuth(&now)
	other := NewAuthService(config.AuthConfig{JWTSecret: "other"})
	other.now = svc.now

	resp, err := other.IssueRespondentToken("user-9")
	require.NoError(t, err)
	_, err = svc.ValidateRespondentToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
