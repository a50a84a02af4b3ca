package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/service"
)

// AuthHandler authentication endpoints
type AuthHandler struct {
	authService  service.AuthService
	oauthService service.OAuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, oauthService service.OAuthService) *AuthHandler {
	return &AuthHandler{authService: authService, oauthService: oauthService}
}

func clientInfo(c *gin.Context) domain.ClientInfo {
	return domain.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	result, err := h.authService.Register(&req, clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.APIResponse{Data: result})
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	result, err := h.authService.Login(&req, clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// Refresh POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req domain.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	tokens, err := h.authService.Refresh(req.RefreshToken, clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, tokens, nil)
}

// Logout POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req domain.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"logged_out": true}, nil)
}

// GoogleLogin GET /api/v1/auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.AuthURL(state))
}

// GoogleCallback GET /api/v1/auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != c.Query("state") {
		common.ErrorResponse(c, 400, "Invalid OAuth state", nil)
		return
	}

	code := c.Query("code")
	if code == "" {
		common.ErrorResponse(c, 400, "Missing authorization code", nil)
		return
	}

	result, err := h.oauthService.HandleCallback(c.Request.Context(), code, clientInfo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result, nil)
}
