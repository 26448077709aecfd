package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests, seeding, and the
// CLI's dev mode. It mimics the remote store's observable behavior:
// generated string ids, server-assigned creation timestamps, equality
// queries with unspecified result order.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]Document
	clock       func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
		clock:       time.Now,
	}
}

// SetClock overrides the timestamp source. Tests use this to make
// server-assigned timestamps deterministic.
func (s *MemoryStore) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

func (s *MemoryStore) Insert(_ context.Context, collection string, fields map[string]interface{}) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		stored[k] = v
	}
	stored[FieldCreatedAt] = s.clock().UTC()

	doc := Document{ID: uuid.NewString(), Fields: stored}
	coll := s.collections[collection]
	if coll == nil {
		coll = make(map[string]Document)
		s.collections[collection] = coll
	}
	coll[doc.ID] = doc
	return copyDocument(doc), nil
}

func (s *MemoryStore) Query(_ context.Context, collection string, filters Filters) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Document
	for _, doc := range s.collections[collection] {
		if matches(doc, filters) {
			out = append(out, copyDocument(doc))
		}
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

func matches(doc Document, filters Filters) bool {
	for key, want := range filters {
		got, ok := doc.Fields[key].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func copyDocument(doc Document) Document {
	fields := make(map[string]interface{}, len(doc.Fields))
	for k, v := range doc.Fields {
		fields[k] = v
	}
	return Document{ID: doc.ID, Fields: fields}
}
