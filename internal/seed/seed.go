// Package seed provides helpers to create demo data for dev mode and
// integration-style tests.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/store"
)

// Options controls how much demo data gets created.
type Options struct {
	Users          int
	Posts          int
	MaxLikesPer    int
	MaxCommentsPer int
}

// DefaultOptions returns a small, readable demo data set.
func DefaultOptions() Options {
	return Options{Users: 4, Posts: 8, MaxLikesPer: 3, MaxCommentsPer: 3}
}

// Populate fills the store with fake users, posts, likes, and comments.
// It returns the generated users; the first one is a convenient dev
// viewer identity.
func Populate(ctx context.Context, s store.Store, opts Options) ([]models.User, error) {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		users = append(users, models.User{
			ID:          uuid.NewString(),
			DisplayName: gofakeit.Name(),
			Email:       gofakeit.Email(),
			AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.Username()),
		})
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("seed requires at least one user")
	}

	postRepo := repository.NewPostRepository(s)
	likeRepo := repository.NewLikeRepository(s)
	commentRepo := repository.NewCommentRepository(s)

	for i := 0; i < opts.Posts; i++ {
		author := users[r.Intn(len(users))]
		post := models.Post{
			UserID:      author.ID,
			Username:    author.Name(),
			Title:       gofakeit.Sentence(5),
			Description: gofakeit.Paragraph(1, 2, 8, " "),
		}
		if err := postRepo.Create(ctx, &post); err != nil {
			return nil, err
		}

		// Unique likers per post keeps the (post, user) invariant.
		for _, liker := range pick(r, users, opts.MaxLikesPer) {
			like := models.Like{PostID: post.ID, UserID: liker.ID}
			if err := likeRepo.Create(ctx, &like); err != nil {
				return nil, err
			}
		}

		for c := 0; c < r.Intn(opts.MaxCommentsPer+1); c++ {
			commenter := users[r.Intn(len(users))]
			comment := models.Comment{
				PostID:   post.ID,
				UserID:   commenter.ID,
				Username: commenter.Name(),
				Text:     gofakeit.Sentence(10),
			}
			if err := commentRepo.Create(ctx, &comment); err != nil {
				return nil, err
			}
		}
	}

	return users, nil
}

func pick(r *rand.Rand, users []models.User, max int) []models.User {
	if max <= 0 {
		return nil
	}
	shuffled := make([]models.User, len(users))
	copy(shuffled, users)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	n := r.Intn(max + 1)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
