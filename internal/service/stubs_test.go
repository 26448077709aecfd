package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ripple/internal/models"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	listFn       func(context.Context) ([]models.Post, error)
	listByUserFn func(context.Context, string) ([]models.Post, error)
	deleteFn     func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) List(ctx context.Context) ([]models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:     func(_ context.Context, _ *models.Post) error { return nil },
		listFn:       func(_ context.Context) ([]models.Post, error) { return nil, nil },
		listByUserFn: func(_ context.Context, _ string) ([]models.Post, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ string) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createFn            func(context.Context, *models.Like) error
	listByPostFn        func(context.Context, string) ([]models.Like, error)
	findByPostAndUserFn func(context.Context, string, string) ([]models.Like, error)
	deleteFn            func(context.Context, string) error
}

func (s *likeRepoStub) Create(ctx context.Context, like *models.Like) error {
	return s.createFn(ctx, like)
}
func (s *likeRepoStub) ListByPost(ctx context.Context, postID string) ([]models.Like, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *likeRepoStub) FindByPostAndUser(ctx context.Context, postID, userID string) ([]models.Like, error) {
	return s.findByPostAndUserFn(ctx, postID, userID)
}
func (s *likeRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn:     func(_ context.Context, _ *models.Like) error { return nil },
		listByPostFn: func(_ context.Context, _ string) ([]models.Like, error) { return nil, nil },
		findByPostAndUserFn: func(_ context.Context, _, _ string) ([]models.Like, error) {
			return nil, nil
		},
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByPostFn func(context.Context, string) ([]models.Comment, error)
	deleteFn     func(context.Context, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		listByPostFn: func(_ context.Context, _ string) ([]models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ string) error { return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, "UNAUTHORIZED", appErr.Code)
}
