package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/stocknote/stocknote-backend/internal/common"
)

// respondError maps service sentinel errors to HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, 400, "Invalid request parameters", err)
	case errors.Is(err, common.ErrInvalidCredentials):
		common.ErrorResponse(c, 401, "Invalid credentials", err)
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrExpiredToken),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrUnauthorized):
		common.ErrorResponse(c, 401, "Authentication required", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Not allowed to modify this resource", err)
	case errors.Is(err, common.ErrPostNotFound):
		common.ErrorResponse(c, 404, "Post not found", err)
	case errors.Is(err, common.ErrBoardNotFound):
		common.ErrorResponse(c, 404, "Board not found", err)
	case errors.Is(err, common.ErrCommentNotFound):
		common.ErrorResponse(c, 404, "Comment not found", err)
	case errors.Is(err, common.ErrParentCommentNotFound):
		common.ErrorResponse(c, 404, "Parent comment not found", err)
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, 404, "User not found", err)
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, 404, "Resource not found", err)
	case errors.Is(err, common.ErrUserAlreadyExists):
		common.ErrorResponse(c, 409, "Email or nickname already in use", err)
	case errors.Is(err, common.ErrConflict):
		common.ErrorResponse(c, 409, "Conflict", err)
	default:
		common.ErrorResponse(c, 500, "Internal server error", err)
	}
}
