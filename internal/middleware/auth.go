package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/pkg/jwt"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyRequest(c, jwtManager)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid or missing token", err)
			}
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth resolves the caller when a valid token is present but lets
// anonymous requests through. Used on read endpoints that personalize
// responses (is_liked, view dedup) for signed-in users.
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyRequest(c, jwtManager)
		if err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

func verifyRequest(c *gin.Context, jwtManager *jwt.Manager) (*jwt.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, jwt.ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, jwt.ErrInvalidToken
	}

	return jwtManager.VerifyToken(parts[1])
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set("userID", claims.UserID)
	c.Set("nickname", claims.Nickname)
	c.Set("isSuperuser", claims.IsSuperuser)
}

// GetUserID extracts the authenticated user ID from context. The second
// return is false for anonymous requests.
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// GetActor extracts the authenticated caller for ownership checks
func GetActor(c *gin.Context) (domain.Actor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{
		ID:          id,
		IsSuperuser: c.GetBool("isSuperuser"),
	}, true
}
