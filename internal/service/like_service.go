package service

import (
	"context"
	"sync"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// LikeService owns the per-post like projections and the toggle
// protocol. A projection is the client's cached view of one post's like
// records; it is mutated only by this service's own completed
// operations, and the last completed write per post wins.
type LikeService struct {
	likeRepo repository.LikeRepository

	mu    sync.Mutex
	likes map[string][]models.Like
}

// NewLikeService creates a like service over the given repository.
func NewLikeService(likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		likes:    make(map[string][]models.Like),
	}
}

// LoadLikes fetches all like records for the post and replaces the local
// projection. On failure the prior projection is kept and the error is
// returned for an inline indicator; it is never fatal.
func (s *LikeService) LoadLikes(ctx context.Context, postID string) ([]models.Like, error) {
	likes, err := s.likeRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.likes[postID] = likes
	s.mu.Unlock()
	return s.Likes(postID), nil
}

// Likes returns a copy of the post's local projection.
func (s *LikeService) Likes(postID string) []models.Like {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Like, len(s.likes[postID]))
	copy(out, s.likes[postID])
	return out
}

// Count returns the number of likes in the post's local projection.
func (s *LikeService) Count(postID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes[postID])
}

// Liked reports whether the viewer's like is present in the post's local
// projection. The like button's state is exactly this membership test,
// never a raw count.
func (s *LikeService) Liked(postID, viewerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, like := range s.likes[postID] {
		if like.UserID == viewerID {
			return true
		}
	}
	return false
}

// Toggle adds the viewer's like if the projection shows none, otherwise
// removes it. The two-step protocol is not atomic against the store; the
// projection is reconciled from whichever step completes.
func (s *LikeService) Toggle(ctx context.Context, postID, viewerID string) error {
	if viewerID == "" {
		return models.NewUnauthorizedError("You must be signed in to like posts")
	}
	if s.Liked(postID, viewerID) {
		return s.removeLike(ctx, postID, viewerID)
	}
	return s.addLike(ctx, postID, viewerID)
}

// addLike creates the viewer's like record and appends it to the local
// projection with the store-returned id. The store has no uniqueness
// constraint on (post, user), so an existing record is adopted instead
// of duplicated.
func (s *LikeService) addLike(ctx context.Context, postID, viewerID string) error {
	existing, err := s.likeRepo.FindByPostAndUser(ctx, postID, viewerID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.adopt(postID, existing[0])
		return nil
	}

	like := models.Like{PostID: postID, UserID: viewerID}
	if err := s.likeRepo.Create(ctx, &like); err != nil {
		// Nothing to roll back; the projection was never touched.
		return err
	}

	s.adopt(postID, like)
	return nil
}

// removeLike deletes the viewer's like record and filters it out of the
// local projection. If duplicates exist from a historical invariant
// violation, the first match is deleted and the rest ignored.
func (s *LikeService) removeLike(ctx context.Context, postID, viewerID string) error {
	matches, err := s.likeRepo.FindByPostAndUser(ctx, postID, viewerID)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		// Remote record already gone; reconcile the projection.
		s.drop(postID, func(like models.Like) bool { return like.UserID == viewerID })
		return nil
	}

	target := matches[0]
	if err := s.likeRepo.Delete(ctx, target.ID); err != nil {
		return err
	}

	s.drop(postID, func(like models.Like) bool { return like.ID == target.ID })
	return nil
}

func (s *LikeService) adopt(postID string, like models.Like) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.likes[postID] {
		if existing.ID == like.ID {
			return
		}
	}
	s.likes[postID] = append(s.likes[postID], like)
}

func (s *LikeService) drop(postID string, match func(models.Like) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.likes[postID][:0]
	for _, like := range s.likes[postID] {
		if !match(like) {
			kept = append(kept, like)
		}
	}
	s.likes[postID] = kept
}
