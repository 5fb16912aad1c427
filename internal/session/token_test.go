package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/evalia/internal/model"
)

func sampleUser() model.User {
	return model.User{
		ID: "user_1", Username: "diego", Role: model.RoleConsultante,
		FullName: "Diego", ConsultorID: "user_2",
	}
}

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue(sampleUser())
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, model.RoleConsultante, claims.Role)
	assert.Equal(t, "user_2", claims.ConsultorID)
}

func TestParseExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, err := m.Issue(sampleUser())
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue(sampleUser())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
