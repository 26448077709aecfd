package repository

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/store"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID string) ([]models.Post, error)
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	store  store.Store
	logger *observability.StoreLogger
}

// NewPostRepository creates a post repository over the given store.
func NewPostRepository(s store.Store) PostRepository {
	return &postRepository{
		store:  s,
		logger: observability.NewStoreLogger(store.CollectionPosts),
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	fields := map[string]interface{}{
		store.FieldUserID:   post.UserID,
		store.FieldUsername: post.Username,
		store.FieldTitle:    post.Title,
		store.FieldDesc:     post.Description,
	}
	doc, err := r.store.Insert(ctx, store.CollectionPosts, fields)
	if err != nil {
		r.logger.LogError(ctx, err, "insert")
		return err
	}
	r.logger.LogInsert(ctx, map[string]interface{}{"id": doc.ID})

	post.ID = doc.ID
	post.CreatedAt = models.TimestampFromValue(doc.Fields[store.FieldCreatedAt])
	return nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	return r.query(ctx, nil)
}

func (r *postRepository) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	return r.query(ctx, store.Filters{store.FieldUserID: userID})
}

func (r *postRepository) query(ctx context.Context, filters store.Filters) ([]models.Post, error) {
	docs, err := r.store.Query(ctx, store.CollectionPosts, filters)
	if err != nil {
		r.logger.LogError(ctx, err, "query")
		return nil, err
	}
	r.logger.LogQuery(ctx, map[string]interface{}{"matches": len(docs)})

	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, decodePost(doc))
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.CollectionPosts, id); err != nil {
		r.logger.LogError(ctx, err, "delete")
		return err
	}
	r.logger.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}

func decodePost(doc store.Document) models.Post {
	return models.Post{
		ID:          doc.ID,
		UserID:      stringField(doc.Fields, store.FieldUserID),
		Username:    stringField(doc.Fields, store.FieldUsername),
		Title:       stringField(doc.Fields, store.FieldTitle),
		Description: stringField(doc.Fields, store.FieldDesc),
		CreatedAt:   models.TimestampFromValue(doc.Fields[store.FieldCreatedAt]),
	}
}
