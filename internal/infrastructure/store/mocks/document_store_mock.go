package mocks

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/bookstore-admin/internal/infrastructure/store"
)

// MockDocumentStore is an in-memory DocumentStore for testing. It mirrors the
// MongoStore semantics: timestamp stamping on create, updated_at refresh on
// update, hex-id parse failures reading as not-found, exact-match filters,
// multi-field sort and limit.
//
// Its clock advances one second per operation so tests can assert on
// timestamp ordering deterministically.
type MockDocumentStore struct {
	mu          sync.Mutex
	collections map[string][]bson.M
	now         time.Time

	// FailWith, when set, makes every operation return this error.
	FailWith error

	// For tracking calls in tests
	CreateCalls []CreateCall
	UpdateCalls []UpdateCall
	DeleteCalls []DeleteCall
}

// CreateCall records parameters passed to Create
type CreateCall struct {
	Collection string
	Doc        any
}

// UpdateCall records parameters passed to Update
type UpdateCall struct {
	Collection string
	ID         string
	Fields     map[string]any
}

// DeleteCall records parameters passed to Delete
type DeleteCall struct {
	Collection string
	ID         string
}

// NewMockDocumentStore creates an empty mock store.
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		collections: make(map[string][]bson.M),
		now:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CreateCalls: make([]CreateCall, 0),
		UpdateCalls: make([]UpdateCall, 0),
		DeleteCalls: make([]DeleteCall, 0),
	}
}

func (m *MockDocumentStore) tick() primitive.DateTime {
	m.now = m.now.Add(time.Second)
	return primitive.NewDateTimeFromTime(m.now)
}

// Create inserts doc with stamped timestamps and returns the new id.
func (m *MockDocumentStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, CreateCall{Collection: collection, Doc: doc})
	if m.FailWith != nil {
		return "", m.FailWith
	}

	fields, err := toFields(doc)
	if err != nil {
		return "", err
	}
	now := m.tick()
	fields["created_at"] = now
	fields["updated_at"] = now
	fields["_id"] = primitive.NewObjectID()

	m.collections[collection] = append(m.collections[collection], fields)
	return fields["_id"].(primitive.ObjectID).Hex(), nil
}

// List decodes matching documents into results.
func (m *MockDocumentStore) List(ctx context.Context, collection string, opts store.ListOptions, results any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}

	var matched []bson.M
	for _, doc := range m.collections[collection] {
		if matches(doc, opts.Filter) {
			matched = append(matched, doc)
		}
	}
	if len(opts.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, sf := range opts.Sort {
				c := compareValues(matched[i][sf.Field], matched[j][sf.Field])
				if c == 0 {
					continue
				}
				if sf.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return decodeAll(matched, results)
}

// FindOne decodes the first matching document into result.
func (m *MockDocumentStore) FindOne(ctx context.Context, collection string, filter store.Filter, result any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return false, m.FailWith
	}
	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			return true, decodeInto(doc, result)
		}
	}
	return false, nil
}

// GetByID decodes the identified document into result. Malformed ids read as
// not found.
func (m *MockDocumentStore) GetByID(ctx context.Context, collection, id string, result any) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	return m.FindOne(ctx, collection, store.Filter{"_id": oid}, result)
}

// Update merges fields into the identified document and refreshes updated_at.
func (m *MockDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{Collection: collection, ID: id, Fields: fields})
	if m.FailWith != nil {
		return false, m.FailWith
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	for _, doc := range m.collections[collection] {
		if doc["_id"] == oid {
			for k, v := range fields {
				doc[k] = normalize(v)
			}
			doc["updated_at"] = m.tick()
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the identified document.
func (m *MockDocumentStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, DeleteCall{Collection: collection, ID: id})
	if m.FailWith != nil {
		return false, m.FailWith
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	docs := m.collections[collection]
	for i, doc := range docs {
		if doc["_id"] == oid {
			m.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of matching documents.
func (m *MockDocumentStore) Count(ctx context.Context, collection string, filter store.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return 0, m.FailWith
	}
	var n int64
	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

// SumField sums a numeric field over matching documents.
func (m *MockDocumentStore) SumField(ctx context.Context, collection, field string, filter store.Filter) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return 0, m.FailWith
	}
	var total float64
	for _, doc := range m.collections[collection] {
		if matches(doc, filter) {
			total += toFloat(doc[field])
		}
	}
	return total, nil
}

// Reset clears all collections and recorded calls.
func (m *MockDocumentStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections = make(map[string][]bson.M)
	m.CreateCalls = m.CreateCalls[:0]
	m.UpdateCalls = m.UpdateCalls[:0]
	m.DeleteCalls = m.DeleteCalls[:0]
}

// toFields converts a tagged struct or map to a bson document via a marshal
// round trip, the same normalization the real driver applies.
func toFields(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fields, nil
}

func decodeInto(doc bson.M, result any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, result)
}

func decodeAll(docs []bson.M, results any) error {
	v := reflect.ValueOf(results)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("results must be a pointer to a slice, got %T", results)
	}
	slice := v.Elem()
	out := reflect.MakeSlice(slice.Type(), 0, len(docs))
	for _, doc := range docs {
		elem := reflect.New(slice.Type().Elem())
		if err := decodeInto(doc, elem.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, elem.Elem())
	}
	slice.Set(out)
	return nil
}

func matches(doc bson.M, filter store.Filter) bool {
	for field, want := range filter {
		got := doc[field]
		if ne, ok := want.(store.NotEqualMatcher); ok {
			if equalValues(got, ne.Value) {
				return false
			}
			continue
		}
		if !equalValues(got, want) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	a, b = normalize(a), normalize(b)
	if fa, ok := numeric(a); ok {
		fb, ok := numeric(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// normalize maps time values to primitive.DateTime so stored and queried
// representations compare consistently.
func normalize(v any) any {
	if t, ok := v.(time.Time); ok {
		return primitive.NewDateTimeFromTime(t)
	}
	return v
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case primitive.DateTime:
		return float64(n), true
	default:
		return 0, false
	}
}

func toFloat(v any) float64 {
	f, _ := numeric(v)
	return f
}

func compareValues(a, b any) int {
	if fa, ok := numeric(a); ok {
		if fb, ok := numeric(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	sa := fmt.Sprint(a)
	sb := fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

var _ store.DocumentStore = (*MockDocumentStore)(nil)
