package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims - stocknote access token payload
type Claims struct {
	jwt.RegisteredClaims
	UserID      int64  `json:"user_id"`
	Nickname    string `json:"nickname,omitempty"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
}

// Manager issues and verifies access tokens
type Manager struct {
	secretKey []byte
	accessTTL time.Duration
}

// NewManager creates a new JWT manager
func NewManager(secret string, accessTTL time.Duration) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		accessTTL: accessTTL,
	}
}

// GenerateAccessToken creates a signed access token for a user
func (m *Manager) GenerateAccessToken(userID int64, nickname string, isSuperuser bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "stocknote-backend",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		UserID:      userID,
		Nickname:    nickname,
		IsSuperuser: isSuperuser,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken parses and validates an access token
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
