// Package store wraps the external document database behind a
// collection-scoped client. The database owns all durable state; this
// boundary exposes only insert-with-generated-id, equality-filtered
// query, and delete-by-id.
package store

import "context"

// Collection names used by the client.
const (
	CollectionPosts    = "posts"
	CollectionLikes    = "likes"
	CollectionComments = "comments"
)

// Document field names shared across collections.
const (
	FieldUserID    = "userId"
	FieldPostID    = "postId"
	FieldUsername  = "username"
	FieldTitle     = "title"
	FieldDesc      = "description"
	FieldText      = "text"
	FieldCreatedAt = "createdAt"
)

// Document is one record of a collection: the store-assigned id plus the
// raw field map exactly as the backend returned it. Timestamp fields keep
// their boundary encoding; decoding them is the repository layer's job.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// Filters is a conjunction of equality predicates on field values.
type Filters map[string]string

// Store is the remote document database boundary.
type Store interface {
	// Insert writes fields as a new document with a generated id and a
	// server-assigned createdAt field, returning the stored document.
	Insert(ctx context.Context, collection string, fields map[string]interface{}) (Document, error)
	// Query returns every document of the collection matching all
	// equality predicates in filters. An empty filter set returns the
	// whole collection. Result order is unspecified.
	Query(ctx context.Context, collection string, filters Filters) ([]Document, error)
	// Delete removes the document with the given id. Deleting an id
	// that does not exist is not an error.
	Delete(ctx context.Context, collection string, id string) error
}
