package service

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

// Viewer identifies who is reading a post. UserID is nil for anonymous
// readers, whose views are never recorded.
type Viewer struct {
	UserID    *int64
	IPAddress string
	UserAgent string
}

// BoardService post operations shared by the free and strategy boards
type BoardService interface {
	ListPosts(kind domain.PostKind, opts repository.ListOptions, viewerID *int64) ([]*domain.PostListItem, *common.Meta, error)
	GetPost(kind domain.PostKind, postID int64, viewer Viewer) (*domain.PostDetail, error)
	CreatePost(kind domain.PostKind, actor domain.Actor, req *domain.CreatePostRequest) (*domain.Post, error)
	UpdatePost(kind domain.PostKind, actor domain.Actor, postID int64, req *domain.UpdatePostRequest) (*domain.Post, error)
	DeletePost(kind domain.PostKind, actor domain.Actor, postID int64) error
}

type boardService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	viewRepo    repository.ViewRepository
	userRepo    repository.UserRepository
	sanitizer   *bluemonday.Policy
}

// NewBoardService creates a new BoardService
func NewBoardService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	viewRepo repository.ViewRepository,
	userRepo repository.UserRepository,
) BoardService {
	return &boardService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		viewRepo:    viewRepo,
		userRepo:    userRepo,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

const (
	maxPageSize = 100
)

// ListPosts returns one page of a board. Notices sort first regardless of the
// requested order. Out-of-range paging parameters are rejected, not clamped.
func (s *boardService) ListPosts(kind domain.PostKind, opts repository.ListOptions, viewerID *int64) ([]*domain.PostListItem, *common.Meta, error) {
	if !kind.Valid() {
		return nil, nil, common.ErrBoardNotFound
	}
	if opts.Page < 1 || opts.Size < 1 || opts.Size > maxPageSize {
		return nil, nil, common.ErrInvalidInput
	}
	if opts.Sort == "" {
		opts.Sort = domain.SortLatest
	}
	if !opts.Sort.Valid() {
		return nil, nil, common.ErrInvalidInput
	}

	posts, total, err := s.postRepo.List(kind, opts)
	if err != nil {
		return nil, nil, err
	}

	items := make([]*domain.PostListItem, 0, len(posts))
	postIDs := make([]int64, 0, len(posts))
	for _, p := range posts {
		items = append(items, &domain.PostListItem{
			ID:             p.ID,
			Title:          p.Title,
			ContentPreview: p.Preview(),
			UserID:         p.UserID,
			ViewCount:      p.ViewCount,
			LikeCount:      p.LikeCount,
			CommentCount:   p.CommentCount,
			IsNotice:       p.IsNotice,
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		})
		postIDs = append(postIDs, p.ID)
	}

	s.fillAuthors(items, posts)

	// One batched lookup marks the viewer's liked posts
	if viewerID != nil && len(postIDs) > 0 {
		liked, err := s.likeRepo.ActiveLikeSet(kind, *viewerID, postIDs)
		if err != nil {
			logger.GetLogger().Warn().Err(err).Msg("failed to load viewer like set")
		} else {
			for _, item := range items {
				item.IsLiked = liked[item.ID]
			}
		}
	}

	return items, common.NewMeta(opts.Page, opts.Size, total), nil
}

// GetPost returns the full post detail. For signed-in viewers the read is
// recorded first, so the returned view_count already includes it when this
// is their first visit.
func (s *boardService) GetPost(kind domain.PostKind, postID int64, viewer Viewer) (*domain.PostDetail, error) {
	if !kind.Valid() {
		return nil, common.ErrBoardNotFound
	}

	post, err := s.postRepo.FindByID(kind, postID)
	if err != nil {
		return nil, common.ErrPostNotFound
	}

	if viewer.UserID != nil {
		counted, err := s.viewRepo.Record(kind, postID, *viewer.UserID, viewer.IPAddress, viewer.UserAgent)
		if err != nil {
			logger.GetLogger().Warn().Err(err).
				Int64("post_id", postID).
				Msg("failed to record post view")
		} else if counted {
			post.ViewCount++
		}
	}

	comments, err := s.commentRepo.ListByPost(kind, postID)
	if err != nil {
		return nil, err
	}
	tree := BuildCommentTree(comments)

	attachments, err := s.postRepo.ListAttachments(kind, postID)
	if err != nil {
		return nil, err
	}
	attachRes := make([]*domain.AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		attachRes = append(attachRes, a.ToResponse())
	}

	detail := &domain.PostDetail{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		UserID:       post.UserID,
		ViewCount:    post.ViewCount,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		IsNotice:     post.IsNotice,
		Category:     post.Category,
		Tags:         []string(post.Tags),
		StrategyType: post.StrategyType,
		TargetPrice:  post.TargetPrice,
		RiskLevel:    post.RiskLevel,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
		Attachments:  attachRes,
		Comments:     tree,
	}

	if author, err := s.userRepo.FindByID(post.UserID); err == nil {
		detail.UserNickname = author.Nickname
		detail.UserProfileImg = author.ProfileImg
	}
	s.fillCommentAuthors(tree)

	if viewer.UserID != nil {
		liked, err := s.likeRepo.HasActiveLike(kind, postID, *viewer.UserID)
		if err == nil {
			detail.IsLiked = liked
		}
		s.markCommentLikes(kind, *viewer.UserID, comments, tree)
	}

	return detail, nil
}

// markCommentLikes decorates the comment forest with the viewer's like state.
// Comment likes live in the shared like table under the comment discriminator.
func (s *boardService) markCommentLikes(kind domain.PostKind, viewerID int64, comments []*domain.Comment, tree []*domain.CommentResponse) {
	if len(comments) == 0 {
		return
	}
	ids := make([]int64, 0, len(comments))
	for _, cm := range comments {
		ids = append(ids, cm.ID)
	}
	liked, err := s.likeRepo.ActiveLikeSet(kind.CommentLikeKind(), viewerID, ids)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to load comment like set")
		return
	}
	var mark func(nodes []*domain.CommentResponse)
	mark = func(nodes []*domain.CommentResponse) {
		for _, n := range nodes {
			n.IsLiked = liked[n.ID]
			mark(n.Children)
		}
	}
	mark(tree)
}

// CreatePost inserts a new post. Board-specific fields from the other board
// are dropped here so the free board never stores strategy columns.
func (s *boardService) CreatePost(kind domain.PostKind, actor domain.Actor, req *domain.CreatePostRequest) (*domain.Post, error) {
	if !kind.Valid() {
		return nil, common.ErrBoardNotFound
	}

	post := &domain.Post{
		UserID:   actor.ID,
		Title:    req.Title,
		Content:  s.sanitizer.Sanitize(req.Content),
		IsNotice: req.IsNotice && actor.IsSuperuser,
	}

	switch kind {
	case domain.KindFree:
		post.Category = req.Category
		post.Tags = domain.TagsValue(req.Tags)
	case domain.KindStrategy:
		post.StrategyType = req.StrategyType
		post.RelatedStockID = req.RelatedStockID
		post.RelatedThemeID = req.RelatedThemeID
		post.TargetPrice = req.TargetPrice
		post.RiskLevel = req.RiskLevel
		post.PerformanceRating = req.PerformanceRating
		post.EntryPrice = req.EntryPrice
		post.ExitPrice = req.ExitPrice
		post.HoldingPeriod = req.HoldingPeriod
	}

	if err := s.postRepo.Create(kind, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies a partial update after the ownership check
func (s *boardService) UpdatePost(kind domain.PostKind, actor domain.Actor, postID int64, req *domain.UpdatePostRequest) (*domain.Post, error) {
	if !kind.Valid() {
		return nil, common.ErrBoardNotFound
	}

	post, err := s.postRepo.FindByID(kind, postID)
	if err != nil {
		return nil, common.ErrPostNotFound
	}
	if !actor.CanMutate(post.UserID) {
		return nil, common.ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = s.sanitizer.Sanitize(*req.Content)
	}
	if req.IsNotice != nil && actor.IsSuperuser {
		updates["is_notice"] = *req.IsNotice
	}
	switch kind {
	case domain.KindFree:
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.Tags != nil {
			updates["tags"] = domain.TagsValue(req.Tags)
		}
	case domain.KindStrategy:
		if req.StrategyType != nil {
			updates["strategy_type"] = *req.StrategyType
		}
		if req.TargetPrice != nil {
			updates["target_price"] = *req.TargetPrice
		}
		if req.RiskLevel != nil {
			updates["risk_level"] = *req.RiskLevel
		}
	}

	if len(updates) == 0 {
		return post, nil
	}

	if err := s.postRepo.Update(kind, postID, updates); err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(kind, postID)
}

// DeletePost removes a post with its comments and attachments. Like and view
// rows are kept as engagement history.
func (s *boardService) DeletePost(kind domain.PostKind, actor domain.Actor, postID int64) error {
	if !kind.Valid() {
		return common.ErrBoardNotFound
	}

	post, err := s.postRepo.FindByID(kind, postID)
	if err != nil {
		return common.ErrPostNotFound
	}
	if !actor.CanMutate(post.UserID) {
		return common.ErrForbidden
	}

	return s.postRepo.Delete(kind, postID)
}

func (s *boardService) fillAuthors(items []*domain.PostListItem, posts []*domain.Post) {
	cache := make(map[int64]*domain.User)
	for i, p := range posts {
		author, ok := cache[p.UserID]
		if !ok {
			u, err := s.userRepo.FindByID(p.UserID)
			if err != nil {
				continue
			}
			cache[p.UserID] = u
			author = u
		}
		items[i].UserNickname = author.Nickname
		items[i].UserProfileImg = author.ProfileImg
	}
}

func (s *boardService) fillCommentAuthors(nodes []*domain.CommentResponse) {
	cache := make(map[int64]*domain.User)
	var walk func([]*domain.CommentResponse)
	walk = func(level []*domain.CommentResponse) {
		for _, n := range level {
			author, ok := cache[n.UserID]
			if !ok {
				u, err := s.userRepo.FindByID(n.UserID)
				if err == nil {
					cache[n.UserID] = u
					author = u
				}
			}
			if author != nil {
				n.UserNickname = author.Nickname
				n.UserProfileImg = author.ProfileImg
			}
			walk(n.Children)
		}
	}
	walk(nodes)
}
