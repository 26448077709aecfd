package repository

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/store"
)

// LikeRepository defines the interface for like data operations.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	ListByPost(ctx context.Context, postID string) ([]models.Like, error)
	FindByPostAndUser(ctx context.Context, postID, userID string) ([]models.Like, error)
	Delete(ctx context.Context, id string) error
}

type likeRepository struct {
	store  store.Store
	logger *observability.StoreLogger
}

// NewLikeRepository creates a like repository over the given store.
func NewLikeRepository(s store.Store) LikeRepository {
	return &likeRepository{
		store:  s,
		logger: observability.NewStoreLogger(store.CollectionLikes),
	}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	fields := map[string]interface{}{
		store.FieldPostID: like.PostID,
		store.FieldUserID: like.UserID,
	}
	doc, err := r.store.Insert(ctx, store.CollectionLikes, fields)
	if err != nil {
		r.logger.LogError(ctx, err, "insert")
		return err
	}
	r.logger.LogInsert(ctx, map[string]interface{}{"id": doc.ID, "post_id": like.PostID})

	like.ID = doc.ID
	return nil
}

func (r *likeRepository) ListByPost(ctx context.Context, postID string) ([]models.Like, error) {
	return r.query(ctx, store.Filters{store.FieldPostID: postID})
}

func (r *likeRepository) FindByPostAndUser(ctx context.Context, postID, userID string) ([]models.Like, error) {
	return r.query(ctx, store.Filters{
		store.FieldPostID: postID,
		store.FieldUserID: userID,
	})
}

func (r *likeRepository) query(ctx context.Context, filters store.Filters) ([]models.Like, error) {
	docs, err := r.store.Query(ctx, store.CollectionLikes, filters)
	if err != nil {
		r.logger.LogError(ctx, err, "query")
		return nil, err
	}

	likes := make([]models.Like, 0, len(docs))
	for _, doc := range docs {
		likes = append(likes, models.Like{
			ID:     doc.ID,
			PostID: stringField(doc.Fields, store.FieldPostID),
			UserID: stringField(doc.Fields, store.FieldUserID),
		})
	}
	return likes, nil
}

func (r *likeRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.CollectionLikes, id); err != nil {
		r.logger.LogError(ctx, err, "delete")
		return err
	}
	r.logger.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}
