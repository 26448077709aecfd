package repository

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/store"
)

// CommentRepository defines the interface for comment data operations.
// Comments are append-only in scope: no update, no individual delete.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	store  store.Store
	logger *observability.StoreLogger
}

// NewCommentRepository creates a comment repository over the given store.
func NewCommentRepository(s store.Store) CommentRepository {
	return &commentRepository{
		store:  s,
		logger: observability.NewStoreLogger(store.CollectionComments),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	fields := map[string]interface{}{
		store.FieldPostID:   comment.PostID,
		store.FieldUserID:   comment.UserID,
		store.FieldUsername: comment.Username,
		store.FieldText:     comment.Text,
	}
	doc, err := r.store.Insert(ctx, store.CollectionComments, fields)
	if err != nil {
		r.logger.LogError(ctx, err, "insert")
		return err
	}
	r.logger.LogInsert(ctx, map[string]interface{}{"id": doc.ID, "post_id": comment.PostID})

	comment.ID = doc.ID
	comment.CreatedAt = models.TimestampFromValue(doc.Fields[store.FieldCreatedAt])
	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	docs, err := r.store.Query(ctx, store.CollectionComments, store.Filters{store.FieldPostID: postID})
	if err != nil {
		r.logger.LogError(ctx, err, "query")
		return nil, err
	}

	comments := make([]models.Comment, 0, len(docs))
	for _, doc := range docs {
		comments = append(comments, models.Comment{
			ID:        doc.ID,
			PostID:    stringField(doc.Fields, store.FieldPostID),
			UserID:    stringField(doc.Fields, store.FieldUserID),
			Username:  stringField(doc.Fields, store.FieldUsername),
			Text:      stringField(doc.Fields, store.FieldText),
			CreatedAt: models.TimestampFromValue(doc.Fields[store.FieldCreatedAt]),
		})
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, store.CollectionComments, id); err != nil {
		r.logger.LogError(ctx, err, "delete")
		return err
	}
	r.logger.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}
