package service

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// SortMode selects the display order of a loaded feed.
type SortMode string

const (
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
	SortRandom SortMode = "random"
)

// FeedService composes the post feed: fetch, owner filter, and the
// local feed projection. Sorting is a pure function over the loaded set
// and is never persisted back into the projection.
type FeedService struct {
	postRepo repository.PostRepository

	mu    sync.Mutex
	posts []models.Post
}

// NewFeedService creates a feed service over the given repository.
func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// LoadFeed fetches the full post collection and replaces the local
// projection. An anonymous viewer yields no data; the feed is gated on
// authentication, not an error.
func (s *FeedService) LoadFeed(ctx context.Context, viewerID string) ([]models.Post, error) {
	if viewerID == "" {
		return nil, nil
	}
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.replace(posts), nil
}

// LoadOwn fetches only the viewer's posts (the "my posts" view) and
// replaces the local projection.
func (s *FeedService) LoadOwn(ctx context.Context, viewerID string) ([]models.Post, error) {
	if viewerID == "" {
		return nil, nil
	}
	posts, err := s.postRepo.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.replace(posts), nil
}

// Posts returns a copy of the local projection in its unsorted base
// order.
func (s *FeedService) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Remove drops a post from the local projection. The cascading delete
// controller calls this after a successful delete.
func (s *FeedService) Remove(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.posts[:0]
	for _, post := range s.posts {
		if post.ID != postID {
			kept = append(kept, post)
		}
	}
	s.posts = kept
}

func (s *FeedService) replace(posts []models.Post) []models.Post {
	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()
	return s.Posts()
}

// SortPosts returns a new slice ordered by the requested mode. Newest
// and oldest are stable sorts on the resolved creation timestamp;
// random is a uniform shuffle. Unknown modes fall back to newest.
func SortPosts(posts []models.Post, mode SortMode) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)

	switch mode {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Resolve().Before(out[j].CreatedAt.Resolve())
		})
	case SortRandom:
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Resolve().After(out[j].CreatedAt.Resolve())
		})
	}
	return out
}
