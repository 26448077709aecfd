package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/store"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopLikeRepo(), noopCommentRepo(), nil)
	ctx := context.Background()

	t.Run("anonymous rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{Title: "hi"})
		assertUnauthorizedError(t, err)
	})

	t.Run("title required", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{ViewerID: "viewer-a", Title: "   "})
		assertValidationError(t, err)
	})

	t.Run("title too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{
			ViewerID: "viewer-a",
			Title:    strings.Repeat("x", 301),
		})
		assertValidationError(t, err)
	})

	t.Run("valid post gets store id", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = "post-1"
			return nil
		}
		svc2 := NewPostService(postRepo, noopLikeRepo(), noopCommentRepo(), nil)
		post, err := svc2.CreatePost(ctx, CreatePostInput{
			ViewerID: "viewer-a",
			Username: "ada",
			Title:    "First",
		})
		require.NoError(t, err)
		assert.Equal(t, "post-1", post.ID)
		assert.Equal(t, "viewer-a", post.UserID)
	})
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopLikeRepo(), noopCommentRepo(), nil)
	post := models.Post{ID: "post-1", UserID: "viewer-a"}

	assertUnauthorizedError(t, svc.DeletePost(context.Background(), post, "viewer-b"))
	assertUnauthorizedError(t, svc.DeletePost(context.Background(), post, ""))
}

func TestPostService_DeletePost_FailClosed(t *testing.T) {
	t.Parallel()

	// Three likes, one of which refuses to die: the post and the
	// surviving likes must remain untouched.
	failErr := errors.New("delete refused")
	var mu sync.Mutex
	deletedLikes := map[string]bool{}
	postDeleted := false

	likeRepo := noopLikeRepo()
	likeRepo.listByPostFn = func(_ context.Context, _ string) ([]models.Like, error) {
		return []models.Like{
			{ID: "l1", PostID: "post-1", UserID: "u1"},
			{ID: "l2", PostID: "post-1", UserID: "u2"},
			{ID: "l3", PostID: "post-1", UserID: "u3"},
		}, nil
	}
	likeRepo.deleteFn = func(_ context.Context, id string) error {
		if id == "l2" {
			return failErr
		}
		mu.Lock()
		deletedLikes[id] = true
		mu.Unlock()
		return nil
	}

	postRepo := noopPostRepo()
	postRepo.deleteFn = func(_ context.Context, _ string) error {
		postDeleted = true
		return nil
	}

	notified := false
	svc := NewPostService(postRepo, likeRepo, noopCommentRepo(), func(string) {
		notified = true
	})

	post := models.Post{ID: "post-1", UserID: "viewer-a"}
	err := svc.DeletePost(context.Background(), post, "viewer-a")
	assert.ErrorIs(t, err, failErr)
	assert.False(t, postDeleted, "post must survive a failed like deletion")
	assert.False(t, notified)
	assert.False(t, deletedLikes["l2"])
}

func TestPostService_DeletePost_CascadesLikesAndComments(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var deletedLikes, deletedComments []string
	order := make([]string, 0, 8)

	likeRepo := noopLikeRepo()
	likeRepo.listByPostFn = func(_ context.Context, _ string) ([]models.Like, error) {
		return []models.Like{{ID: "l1"}, {ID: "l2"}}, nil
	}
	likeRepo.deleteFn = func(_ context.Context, id string) error {
		mu.Lock()
		deletedLikes = append(deletedLikes, id)
		order = append(order, "dependent")
		mu.Unlock()
		return nil
	}

	commentRepo := noopCommentRepo()
	commentRepo.listByPostFn = func(_ context.Context, _ string) ([]models.Comment, error) {
		return []models.Comment{{ID: "c1"}}, nil
	}
	commentRepo.deleteFn = func(_ context.Context, id string) error {
		mu.Lock()
		deletedComments = append(deletedComments, id)
		order = append(order, "dependent")
		mu.Unlock()
		return nil
	}

	postRepo := noopPostRepo()
	postRepo.deleteFn = func(_ context.Context, _ string) error {
		mu.Lock()
		order = append(order, "post")
		mu.Unlock()
		return nil
	}

	var removed string
	svc := NewPostService(postRepo, likeRepo, commentRepo, func(postID string) {
		removed = postID
	})

	post := models.Post{ID: "post-1", UserID: "viewer-a"}
	require.NoError(t, svc.DeletePost(context.Background(), post, "viewer-a"))

	assert.ElementsMatch(t, []string{"l1", "l2"}, deletedLikes)
	assert.Equal(t, []string{"c1"}, deletedComments)
	assert.Equal(t, "post-1", removed)
	// The post goes last, after the dependent barrier.
	require.NotEmpty(t, order)
	assert.Equal(t, "post", order[len(order)-1])
}

// TestFeedScenario_LikeUnlikeDelete walks the end-to-end flow over a
// real in-memory store: A posts, B likes and unlikes, B likes again and
// comments, then A deletes and nothing dependent survives.
func TestFeedScenario_LikeUnlikeDelete(t *testing.T) {
	t.Parallel()

	mem := store.NewMemoryStore()
	postRepo := repository.NewPostRepository(mem)
	likeRepo := repository.NewLikeRepository(mem)
	commentRepo := repository.NewCommentRepository(mem)

	feed := NewFeedService(postRepo)
	likes := NewLikeService(likeRepo)
	comments := NewCommentService(commentRepo)
	posts := NewPostService(postRepo, likeRepo, commentRepo, feed.Remove)

	ctx := context.Background()
	const viewerA = "viewer-a"
	const viewerB = "viewer-b"

	post, err := posts.CreatePost(ctx, CreatePostInput{
		ViewerID: viewerA,
		Username: "ada",
		Title:    "Post X",
	})
	require.NoError(t, err)

	loaded, err := feed.LoadFeed(ctx, viewerB)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	// B likes X.
	_, err = likes.LoadLikes(ctx, post.ID)
	require.NoError(t, err)
	require.NoError(t, likes.Toggle(ctx, post.ID, viewerB))
	assert.Equal(t, 1, likes.Count(post.ID))
	assert.True(t, likes.Liked(post.ID, viewerB))

	// B unlikes X.
	require.NoError(t, likes.Toggle(ctx, post.ID, viewerB))
	assert.Equal(t, 0, likes.Count(post.ID))
	assert.False(t, likes.Liked(post.ID, viewerB))

	// B likes again and comments, so the cascade has work to do.
	require.NoError(t, likes.Toggle(ctx, post.ID, viewerB))
	_, err = comments.Submit(ctx, SubmitCommentInput{
		PostID:   post.ID,
		ViewerID: viewerB,
		Username: "bea",
		Text:     "nice one",
	})
	require.NoError(t, err)

	// A deletes X.
	require.NoError(t, posts.DeletePost(ctx, *post, viewerA))
	assert.Empty(t, feed.Posts())

	remainingLikes, err := likeRepo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, remainingLikes, "no like records may reference the deleted post")

	remainingComments, err := commentRepo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, remainingComments, "no comment records may reference the deleted post")

	remainingPosts, err := postRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remainingPosts)
}
