package service

import (
	"testing"

	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newBoardService(postRepo *MockPostRepository, commentRepo *MockCommentRepository,
	likeRepo *MockLikeRepository, viewRepo *MockViewRepository, userRepo *MockUserRepository) BoardService {
	return NewBoardService(postRepo, commentRepo, likeRepo, viewRepo, userRepo)
}

func TestListPosts_RejectsOutOfRangePaging(t *testing.T) {
	svc := newBoardService(new(MockPostRepository), new(MockCommentRepository),
		new(MockLikeRepository), new(MockViewRepository), new(MockUserRepository))

	cases := []repository.ListOptions{
		{Page: 0, Size: 20},
		{Page: -1, Size: 20},
		{Page: 1, Size: 0},
		{Page: 1, Size: 101},
	}
	for _, opts := range cases {
		_, _, err := svc.ListPosts(domain.KindFree, opts, nil)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	}
}

func TestListPosts_RejectsUnknownSort(t *testing.T) {
	svc := newBoardService(new(MockPostRepository), new(MockCommentRepository),
		new(MockLikeRepository), new(MockViewRepository), new(MockUserRepository))

	_, _, err := svc.ListPosts(domain.KindFree,
		repository.ListOptions{Page: 1, Size: 20, Sort: "random"}, nil)

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestListPosts_AnonymousViewer(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	userRepo := new(MockUserRepository)
	svc := newBoardService(postRepo, new(MockCommentRepository), likeRepo,
		new(MockViewRepository), userRepo)

	posts := []*domain.Post{
		{ID: 1, UserID: 10, Title: "a", Content: "body", LikeCount: 3},
		{ID: 2, UserID: 10, Title: "b", Content: "body"},
	}
	postRepo.On("List", domain.KindFree, mock.Anything).Return(posts, int64(2), nil)
	userRepo.On("FindByID", int64(10)).Return(&domain.User{ID: 10, Nickname: "trader"}, nil)

	items, meta, err := svc.ListPosts(domain.KindFree,
		repository.ListOptions{Page: 1, Size: 20}, nil)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "trader", items[0].UserNickname)
	assert.False(t, items[0].IsLiked)
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, 1, meta.TotalPages)
	likeRepo.AssertNotCalled(t, "ActiveLikeSet")
}

func TestListPosts_MarksViewerLikes(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	userRepo := new(MockUserRepository)
	svc := newBoardService(postRepo, new(MockCommentRepository), likeRepo,
		new(MockViewRepository), userRepo)

	posts := []*domain.Post{
		{ID: 1, UserID: 10, Content: "x"},
		{ID: 2, UserID: 10, Content: "x"},
	}
	postRepo.On("List", domain.KindFree, mock.Anything).Return(posts, int64(2), nil)
	userRepo.On("FindByID", int64(10)).Return(&domain.User{ID: 10, Nickname: "trader"}, nil)
	likeRepo.On("ActiveLikeSet", domain.KindFree, int64(7), []int64{1, 2}).
		Return(map[int64]bool{2: true}, nil)

	viewerID := int64(7)
	items, _, err := svc.ListPosts(domain.KindFree,
		repository.ListOptions{Page: 1, Size: 20}, &viewerID)

	assert.NoError(t, err)
	assert.False(t, items[0].IsLiked)
	assert.True(t, items[1].IsLiked)
}

func TestListPosts_TotalPagesCeiling(t *testing.T) {
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	svc := newBoardService(postRepo, new(MockCommentRepository), new(MockLikeRepository),
		new(MockViewRepository), userRepo)

	postRepo.On("List", domain.KindFree, mock.Anything).Return([]*domain.Post{}, int64(41), nil)

	_, meta, err := svc.ListPosts(domain.KindFree,
		repository.ListOptions{Page: 1, Size: 20}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestGetPost_FirstViewCounted(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	likeRepo := new(MockLikeRepository)
	viewRepo := new(MockViewRepository)
	userRepo := new(MockUserRepository)
	svc := newBoardService(postRepo, commentRepo, likeRepo, viewRepo, userRepo)

	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1, UserID: 10, ViewCount: 5}, nil)
	viewRepo.On("Record", domain.KindFree, int64(1), int64(7), "1.2.3.4", "ua").
		Return(true, nil)
	commentRepo.On("ListByPost", domain.KindFree, int64(1)).Return([]*domain.Comment{}, nil)
	postRepo.On("ListAttachments", domain.KindFree, int64(1)).Return([]*domain.Attachment{}, nil)
	userRepo.On("FindByID", int64(10)).Return(&domain.User{ID: 10, Nickname: "author"}, nil)
	likeRepo.On("HasActiveLike", domain.KindFree, int64(1), int64(7)).Return(false, nil)

	viewerID := int64(7)
	detail, err := svc.GetPost(domain.KindFree, 1, Viewer{
		UserID: &viewerID, IPAddress: "1.2.3.4", UserAgent: "ua",
	})

	assert.NoError(t, err)
	assert.Equal(t, 6, detail.ViewCount)
	assert.Equal(t, "author", detail.UserNickname)
}

func TestGetPost_RepeatViewNotCounted(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	likeRepo := new(MockLikeRepository)
	viewRepo := new(MockViewRepository)
	userRepo := new(MockUserRepository)
	svc := newBoardService(postRepo, commentRepo, likeRepo, viewRepo, userRepo)

	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1, UserID: 10, ViewCount: 5}, nil)
	viewRepo.On("Record", domain.KindFree, int64(1), int64(7), mock.Anything, mock.Anything).
		Return(false, nil)
	commentRepo.On("ListByPost", domain.KindFree, int64(1)).Return([]*domain.Comment{}, nil)
	postRepo.On("ListAttachments", domain.KindFree, int64(1)).Return([]*domain.Attachment{}, nil)
	userRepo.On("FindByID", int64(10)).Return(&domain.User{ID: 10}, nil)
	likeRepo.On("HasActiveLike", domain.KindFree, int64(1), int64(7)).Return(true, nil)

	viewerID := int64(7)
	detail, err := svc.GetPost(domain.KindFree, 1, Viewer{UserID: &viewerID})

	assert.NoError(t, err)
	assert.Equal(t, 5, detail.ViewCount)
	assert.True(t, detail.IsLiked)
}

func TestGetPost_AnonymousViewNeverRecorded(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	viewRepo := new(MockViewRepository)
	userRepo := new(MockUserRepository)
	svc := newBoardService(postRepo, commentRepo, new(MockLikeRepository), viewRepo, userRepo)

	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1, UserID: 10, ViewCount: 5}, nil)
	commentRepo.On("ListByPost", domain.KindFree, int64(1)).Return([]*domain.Comment{}, nil)
	postRepo.On("ListAttachments", domain.KindFree, int64(1)).Return([]*domain.Attachment{}, nil)
	userRepo.On("FindByID", int64(10)).Return(&domain.User{ID: 10}, nil)

	detail, err := svc.GetPost(domain.KindFree, 1, Viewer{IPAddress: "1.2.3.4"})

	assert.NoError(t, err)
	assert.Equal(t, 5, detail.ViewCount)
	viewRepo.AssertNotCalled(t, "Record")
}

func TestGetPost_BuildsCommentForest(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	userRepo := new(MockUserRepository)
	svc := newBoardService(postRepo, commentRepo, new(MockLikeRepository),
		new(MockViewRepository), userRepo)

	parentID := int64(1)
	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1, UserID: 10}, nil)
	commentRepo.On("ListByPost", domain.KindFree, int64(1)).Return([]*domain.Comment{
		{ID: 1, UserID: 10, Depth: 0},
		{ID: 2, UserID: 10, ParentID: &parentID, Depth: 1},
	}, nil)
	postRepo.On("ListAttachments", domain.KindFree, int64(1)).Return([]*domain.Attachment{}, nil)
	userRepo.On("FindByID", int64(10)).Return(&domain.User{ID: 10, Nickname: "author"}, nil)

	detail, err := svc.GetPost(domain.KindFree, 1, Viewer{})

	assert.NoError(t, err)
	assert.Len(t, detail.Comments, 1)
	assert.Len(t, detail.Comments[0].Children, 1)
	assert.Equal(t, "author", detail.Comments[0].Children[0].UserNickname)
}

func TestGetPost_MarksViewerCommentLikes(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	likeRepo := new(MockLikeRepository)
	viewRepo := new(MockViewRepository)
	userRepo := new(MockUserRepository)
	svc := newBoardService(postRepo, commentRepo, likeRepo, viewRepo, userRepo)

	parentID := int64(1)
	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1, UserID: 10}, nil)
	viewRepo.On("Record", domain.KindFree, int64(1), int64(7), mock.Anything, mock.Anything).
		Return(false, nil)
	commentRepo.On("ListByPost", domain.KindFree, int64(1)).Return([]*domain.Comment{
		{ID: 1, UserID: 10, Depth: 0},
		{ID: 2, UserID: 10, ParentID: &parentID, Depth: 1},
	}, nil)
	postRepo.On("ListAttachments", domain.KindFree, int64(1)).Return([]*domain.Attachment{}, nil)
	userRepo.On("FindByID", int64(10)).Return(&domain.User{ID: 10}, nil)
	likeRepo.On("HasActiveLike", domain.KindFree, int64(1), int64(7)).Return(false, nil)
	likeRepo.On("ActiveLikeSet", domain.KindFree.CommentLikeKind(), int64(7), []int64{1, 2}).
		Return(map[int64]bool{2: true}, nil)

	viewerID := int64(7)
	detail, err := svc.GetPost(domain.KindFree, 1, Viewer{UserID: &viewerID})

	assert.NoError(t, err)
	assert.False(t, detail.Comments[0].IsLiked)
	assert.True(t, detail.Comments[0].Children[0].IsLiked)
}

func TestUpdatePost_ForbiddenForNonOwner(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := newBoardService(postRepo, new(MockCommentRepository), new(MockLikeRepository),
		new(MockViewRepository), new(MockUserRepository))

	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1, UserID: 10}, nil)

	title := "hijacked"
	_, err := svc.UpdatePost(domain.KindFree, domain.Actor{ID: 99}, 1,
		&domain.UpdatePostRequest{Title: &title})

	assert.ErrorIs(t, err, common.ErrForbidden)
	postRepo.AssertNotCalled(t, "Update")
}

func TestUpdatePost_SuperuserMayEditAnyPost(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := newBoardService(postRepo, new(MockCommentRepository), new(MockLikeRepository),
		new(MockViewRepository), new(MockUserRepository))

	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1, UserID: 10, Title: "old"}, nil)
	postRepo.On("Update", domain.KindFree, int64(1), mock.MatchedBy(func(u map[string]interface{}) bool {
		return u["title"] == "fixed"
	})).Return(nil)

	title := "fixed"
	_, err := svc.UpdatePost(domain.KindFree, domain.Actor{ID: 99, IsSuperuser: true}, 1,
		&domain.UpdatePostRequest{Title: &title})

	assert.NoError(t, err)
	postRepo.AssertExpectations(t)
}

func TestDeletePost_ForbiddenForNonOwner(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := newBoardService(postRepo, new(MockCommentRepository), new(MockLikeRepository),
		new(MockViewRepository), new(MockUserRepository))

	postRepo.On("FindByID", domain.KindStrategy, int64(3)).
		Return(&domain.Post{ID: 3, UserID: 10}, nil)

	err := svc.DeletePost(domain.KindStrategy, domain.Actor{ID: 11}, 3)

	assert.ErrorIs(t, err, common.ErrForbidden)
	postRepo.AssertNotCalled(t, "Delete")
}

func TestDeletePost_NotFound(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := newBoardService(postRepo, new(MockCommentRepository), new(MockLikeRepository),
		new(MockViewRepository), new(MockUserRepository))

	postRepo.On("FindByID", domain.KindFree, int64(404)).
		Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeletePost(domain.KindFree, domain.Actor{ID: 10}, 404)

	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestCreatePost_StripsCrossBoardFields(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := newBoardService(postRepo, new(MockCommentRepository), new(MockLikeRepository),
		new(MockViewRepository), new(MockUserRepository))

	target := 75000.0
	postRepo.On("Create", domain.KindFree, mock.MatchedBy(func(p *domain.Post) bool {
		return p.TargetPrice == nil && p.Category == "general"
	})).Return(nil)

	_, err := svc.CreatePost(domain.KindFree, domain.Actor{ID: 7}, &domain.CreatePostRequest{
		Title:       "t",
		Content:     "c",
		Category:    "general",
		TargetPrice: &target,
	})

	assert.NoError(t, err)
	postRepo.AssertExpectations(t)
}

func TestCreatePost_NoticeRequiresSuperuser(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := newBoardService(postRepo, new(MockCommentRepository), new(MockLikeRepository),
		new(MockViewRepository), new(MockUserRepository))

	postRepo.On("Create", domain.KindFree, mock.MatchedBy(func(p *domain.Post) bool {
		return !p.IsNotice
	})).Return(nil)

	_, err := svc.CreatePost(domain.KindFree, domain.Actor{ID: 7}, &domain.CreatePostRequest{
		Title: "t", Content: "c", IsNotice: true,
	})

	assert.NoError(t, err)
	postRepo.AssertExpectations(t)
}
