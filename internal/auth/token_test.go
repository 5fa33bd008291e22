package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/bookcatalog/internal/entities"
)

func testUser() *entities.User {
	return &entities.User{
		ID:       42,
		Username: "reader",
		Email:    "reader@example.com",
		Role:     entities.UserRoleUser,
	}
}

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(testUser(), "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, "test-secret")

	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := IssueToken(testUser(), "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := IssueToken(testUser(), "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "test-secret")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", "test-secret")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
