package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Collection names used by the service.
const (
	CollectionTask     = "task"
	CollectionWorklog  = "worklog"
	CollectionNote     = "note"
	CollectionActivity = "activity"
)

// Document is a single schemaless record. The store sets "_id" (the string
// form of the document id) on every document it returns.
type Document = map[string]any

// Filter matches documents whose fields contain the given values.
type Filter = map[string]any

var (
	ErrInvalidID   = errors.New("invalid id format")
	ErrNotFound    = errors.New("document not found")
	ErrUnavailable = errors.New("store unavailable")
)

type FindOptions struct {
	NewestFirst bool
	Limit       int
}

type FindOption func(*FindOptions)

// NewestFirst sorts results by creation time, most recent first.
func NewestFirst() FindOption {
	return func(o *FindOptions) { o.NewestFirst = true }
}

// Limit caps the number of returned documents. Zero means no limit.
func Limit(n int) FindOption {
	return func(o *FindOptions) { o.Limit = n }
}

// Store is the document store contract. Implementations do not retry;
// connectivity and query errors surface to the caller as-is.
type Store interface {
	InsertOne(ctx context.Context, collection string, doc Document) (string, error)
	InsertMany(ctx context.Context, collection string, docs []Document) ([]string, error)
	Find(ctx context.Context, collection string, filter Filter, opts ...FindOption) ([]Document, error)
	FindOneAndUpdate(ctx context.Context, collection, id string, patch Document) (Document, error)
	FindOneAndDelete(ctx context.Context, collection, id string) (Document, error)
	ListCollections(ctx context.Context) ([]string, error)
	Available(ctx context.Context) bool
}

// ParseID validates a wire-format document id.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}
