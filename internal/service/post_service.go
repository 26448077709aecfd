package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// PostService creates posts and runs the cascading delete protocol.
type PostService struct {
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	// onDelete notifies the owning feed view after a successful delete
	// so it can drop the post from its local projection.
	onDelete func(postID string)
}

// CreatePostInput carries one post creation.
type CreatePostInput struct {
	ViewerID    string
	Username    string
	Title       string
	Description string
}

// NewPostService creates a post service over the given repositories.
func NewPostService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	onDelete func(postID string),
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		onDelete:    onDelete,
	}
}

// CreatePost validates and stores a new post. The store assigns the id
// and the creation timestamp.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.ViewerID == "" {
		return nil, models.NewUnauthorizedError("You must be signed in to post")
	}

	const maxTitleLen = 300
	const maxDescriptionLen = 5000

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title is too long (max 300 characters)")
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description is too long (max 5000 characters)")
	}

	username := in.Username
	if username == "" {
		username = "Anonymous"
	}

	post := &models.Post{
		UserID:      in.ViewerID,
		Username:    username,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post and its dependent records. The order is
// load-bearing: dependents go first, behind a completion barrier, so a
// failure leaves the post and its surviving dependents intact rather
// than orphaning records that point at a missing post.
//
// The cascade covers likes and comments. Only the owner may delete.
func (s *PostService) DeletePost(ctx context.Context, post models.Post, viewerID string) error {
	if viewerID == "" || post.UserID != viewerID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	likes, err := s.likeRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return err
	}
	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return err
	}

	// Sibling deletions fan out concurrently; order among them does not
	// matter. Any failure aborts the whole sequence before the post
	// itself is touched.
	g, gctx := errgroup.WithContext(ctx)
	for _, like := range likes {
		like := like
		g.Go(func() error {
			return s.likeRepo.Delete(gctx, like.ID)
		})
	}
	for _, comment := range comments {
		comment := comment
		g.Go(func() error {
			return s.commentRepo.Delete(gctx, comment.ID)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	if s.onDelete != nil {
		s.onDelete(post.ID)
	}
	return nil
}
