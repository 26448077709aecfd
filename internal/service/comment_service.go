package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// CommentService owns the per-post comment threads: on-demand fetch on
// expand, append-only submission, and the local thread projection.
type CommentService struct {
	commentRepo repository.CommentRepository

	mu       sync.Mutex
	expanded map[string]bool
	comments map[string][]models.Comment
}

// SubmitCommentInput carries one comment submission.
type SubmitCommentInput struct {
	PostID   string
	ViewerID string
	Username string
	Text     string
}

// NewCommentService creates a comment service over the given repository.
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		expanded:    make(map[string]bool),
		comments:    make(map[string][]models.Comment),
	}
}

// Expand opens the post's thread panel and fetches its comments. Every
// expand re-fetches; nothing is cached across collapse/expand cycles.
func (s *CommentService) Expand(ctx context.Context, postID string) ([]models.Comment, error) {
	s.mu.Lock()
	s.expanded[postID] = true
	s.mu.Unlock()

	return s.refresh(ctx, postID)
}

// Collapse closes the post's thread panel.
func (s *CommentService) Collapse(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[postID] = false
	delete(s.comments, postID)
}

// Expanded reports whether the post's thread panel is open.
func (s *CommentService) Expanded(postID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[postID]
}

// Comments returns a copy of the post's local thread projection.
func (s *CommentService) Comments(postID string) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Comment, len(s.comments[postID]))
	copy(out, s.comments[postID])
	return out
}

// Submit validates and stores one comment, then refreshes the thread.
// Validation happens before any write: empty text and text over the
// length limit are rejected, and anonymous viewers cannot submit.
func (s *CommentService) Submit(ctx context.Context, in SubmitCommentInput) (*models.Comment, error) {
	if in.ViewerID == "" {
		return nil, models.NewUnauthorizedError("You must be signed in to comment")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Comment cannot be empty")
	}
	if utf8.RuneCountInString(in.Text) > models.MaxCommentLen {
		return nil, models.NewValidationError("Comment is too long (max 500 characters)")
	}

	username := in.Username
	if username == "" {
		username = "Anonymous"
	}

	comment := models.Comment{
		PostID:   in.PostID,
		UserID:   in.ViewerID,
		Username: username,
		Text:     strings.TrimSpace(in.Text),
	}
	if err := s.commentRepo.Create(ctx, &comment); err != nil {
		return nil, err
	}

	// Refresh failure does not undo the successful submit; the stale
	// projection just lasts until the next expand.
	if s.Expanded(in.PostID) {
		if _, err := s.refresh(ctx, in.PostID); err != nil {
			return &comment, err
		}
	}
	return &comment, nil
}

// refresh replaces the post's thread projection with a fresh fetch,
// sorted newest first. The store's return order is unspecified, so the
// display sort happens here.
func (s *CommentService) refresh(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Resolve().After(comments[j].CreatedAt.Resolve())
	})

	s.mu.Lock()
	s.comments[postID] = comments
	s.mu.Unlock()
	return s.Comments(postID), nil
}
