package store

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the store was constructed without a live
// database connection.
var ErrUnavailable = errors.New("document store not available")

// Filter matches documents by field value. Plain values match exactly;
// a NotEqualMatcher value matches documents whose field differs.
type Filter map[string]any

// NotEqualMatcher matches any value other than Value.
type NotEqualMatcher struct {
	Value any
}

// NotEqual builds a filter value that matches everything except v.
func NotEqual(v any) NotEqualMatcher {
	return NotEqualMatcher{Value: v}
}

// SortField orders results by a single field.
type SortField struct {
	Field string
	Desc  bool
}

// ListOptions narrows and orders a List call. The zero value returns every
// document in insertion order.
type ListOptions struct {
	Filter Filter
	Sort   []SortField
	Limit  int64
}

// DocumentStore defines the generic, collection-keyed persistence operations
// every entity service is built on. Identifiers cross this boundary as plain
// strings; a malformed id is reported as not-found, never as an error.
type DocumentStore interface {
	// Create inserts doc with created_at/updated_at stamped to the current
	// UTC time and returns the new document id.
	Create(ctx context.Context, collection string, doc any) (string, error)

	// List decodes all matching documents into results, which must be a
	// pointer to a slice.
	List(ctx context.Context, collection string, opts ListOptions, results any) error

	// FindOne decodes the first document matching filter into result and
	// reports whether one was found.
	FindOne(ctx context.Context, collection string, filter Filter, result any) (bool, error)

	// GetByID decodes the document with the given id into result and reports
	// whether it exists.
	GetByID(ctx context.Context, collection, id string, result any) (bool, error)

	// Update merges fields into the document with the given id, refreshes
	// updated_at, and reports whether a document was modified.
	Update(ctx context.Context, collection, id string, fields map[string]any) (bool, error)

	// Delete removes the document with the given id and reports whether one
	// was deleted.
	Delete(ctx context.Context, collection, id string) (bool, error)

	// Count returns the number of documents matching filter.
	Count(ctx context.Context, collection string, filter Filter) (int64, error)

	// SumField returns the sum of a numeric field over all documents matching
	// filter, 0 when none match.
	SumField(ctx context.Context, collection, field string, filter Filter) (float64, error)
}
