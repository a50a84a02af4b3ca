package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/middleware"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/internal/service"
	"github.com/stocknote/stocknote-backend/pkg/ginutil"
)

// BoardHandler post, comment, and like endpoints for both boards. The board
// is selected by the :board path segment ("free" or "strategy").
type BoardHandler struct {
	boardService   service.BoardService
	commentService service.CommentService
	likeService    service.LikeService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService service.BoardService, commentService service.CommentService, likeService service.LikeService) *BoardHandler {
	return &BoardHandler{
		boardService:   boardService,
		commentService: commentService,
		likeService:    likeService,
	}
}

func boardKind(c *gin.Context) domain.PostKind {
	return domain.PostKind(c.Param("board"))
}

// ListPosts GET /api/v1/boards/:board/posts
func (h *BoardHandler) ListPosts(c *gin.Context) {
	kind := boardKind(c)
	opts := repository.ListOptions{
		Page:   ginutil.QueryInt(c, "page", 1),
		Size:   ginutil.QueryInt(c, "size", 20),
		Search: c.Query("search"),
		Sort:   domain.SortOrder(c.DefaultQuery("sort", "latest")),
	}

	var viewerID *int64
	if id, ok := middleware.GetUserID(c); ok {
		viewerID = &id
	}

	items, meta, err := h.boardService.ListPosts(kind, opts, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, items, meta)
}

// GetPost GET /api/v1/boards/:board/posts/:id
func (h *BoardHandler) GetPost(c *gin.Context) {
	kind := boardKind(c)
	postID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	viewer := service.Viewer{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if id, ok := middleware.GetUserID(c); ok {
		viewer.UserID = &id
	}

	detail, err := h.boardService.GetPost(kind, postID, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, detail, nil)
}

// CreatePost POST /api/v1/boards/:board/posts
func (h *BoardHandler) CreatePost(c *gin.Context) {
	kind := boardKind(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}

	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.boardService.CreatePost(kind, actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.APIResponse{Data: post})
}

// UpdatePost PUT /api/v1/boards/:board/posts/:id
func (h *BoardHandler) UpdatePost(c *gin.Context) {
	kind := boardKind(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}

	postID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.boardService.UpdatePost(kind, actor, postID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, post, nil)
}

// DeletePost DELETE /api/v1/boards/:board/posts/:id
func (h *BoardHandler) DeletePost(c *gin.Context) {
	kind := boardKind(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}

	postID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	if err := h.boardService.DeletePost(kind, actor, postID); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// ToggleLike POST /api/v1/boards/:board/posts/:id/like
func (h *BoardHandler) ToggleLike(c *gin.Context) {
	kind := boardKind(c)
	userID, ok := middleware.GetUserID(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}

	postID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	result, err := h.likeService.ToggleLike(kind, postID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// CreateComment POST /api/v1/boards/:board/posts/:id/comments
func (h *BoardHandler) CreateComment(c *gin.Context) {
	kind := boardKind(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}

	postID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	comment, err := h.commentService.CreateComment(kind, actor, postID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.APIResponse{Data: comment})
}

// UpdateComment PUT /api/v1/boards/:board/comments/:commentID
func (h *BoardHandler) UpdateComment(c *gin.Context) {
	kind := boardKind(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}

	commentID, err := ginutil.ParamInt64(c, "commentID")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid comment ID", err)
		return
	}

	var req domain.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	comment, err := h.commentService.UpdateComment(kind, actor, commentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, comment, nil)
}

// DeleteComment DELETE /api/v1/boards/:board/comments/:commentID
func (h *BoardHandler) DeleteComment(c *gin.Context) {
	kind := boardKind(c)
	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required", nil)
		return
	}

	commentID, err := ginutil.ParamInt64(c, "commentID")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid comment ID", err)
		return
	}

	if err := h.commentService.DeleteComment(kind, actor, commentID); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
