package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndVerify(t *testing.T) {
	manager := NewManager("test-secret", 30*time.Minute)

	token, err := manager.GenerateAccessToken(42, "trader", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "trader", claims.Nickname)
	assert.True(t, claims.IsSuperuser)
	assert.Equal(t, "stocknote-backend", claims.Issuer)
}

func TestVerify_ExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.GenerateAccessToken(42, "trader", false)
	assert.NoError(t, err)

	_, err = manager.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	manager := NewManager("secret-a", 30*time.Minute)
	other := NewManager("secret-b", 30*time.Minute)

	token, err := manager.GenerateAccessToken(42, "trader", false)
	assert.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	manager := NewManager("test-secret", 30*time.Minute)

	_, err := manager.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
