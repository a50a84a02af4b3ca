package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/middleware"
	"github.com/stocknote/stocknote-backend/internal/service"
	"github.com/stocknote/stocknote-backend/pkg/ginutil"
)

// UserHandler user profile endpoints
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, user, nil)
}

// ListUsers GET /api/v1/users, superuser only
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}
	if !actor.IsSuperuser {
		common.ErrorResponse(c, 403, "Superuser required", nil)
		return
	}

	users, err := h.userService.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, users, nil)
}

// GetUser GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid user ID", err)
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, user, nil)
}

// ListSocialAccounts GET /api/v1/users/me/accounts
func (h *UserHandler) ListSocialAccounts(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}

	accounts, err := h.userService.ListSocialAccounts(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, accounts, nil)
}
