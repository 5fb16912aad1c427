package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/evalia/internal/session"
)

func newAuth(e *env) AuthService {
	return NewAuthService(e.users, session.NewTokenManager("test-secret", time.Hour))
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)

	resp, err := svc.Login("admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, e.admin.ID, resp.User.ID)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLoginTrimsWhitespace(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)

	resp, err := svc.Login("  admin  ", " admin123 ")
	require.NoError(t, err)
	assert.Equal(t, e.admin.ID, resp.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)

	_, err := svc.Login("admin", "wrong")
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidCredentials, rej.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	e := newEnv(t)
	svc := newAuth(e)

	_, err := svc.Login("ghost", "whatever")
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidCredentials, rej.Code)
}

func TestLoginTokenRoundTrip(t *testing.T) {
	e := newEnv(t)
	tokens := session.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(e.users, tokens)

	resp, err := svc.Login("diego", "secret")
	require.NoError(t, err)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, e.consultante.ID, claims.UserID)
	assert.Equal(t, e.consultor.ID, claims.ConsultorID)
}
