package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bookstore-admin/internal/infrastructure/store/mocks"
)

func newTestBookService() (*Service, *mocks.MockDocumentStore) {
	docStore := mocks.NewMockDocumentStore()
	return NewService(docStore), docStore
}

func TestService_Create_Success(t *testing.T) {
	service, _ := newTestBookService()
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{
		Title:       "The Go Programming Language",
		Author:      "Donovan & Kernighan",
		Price:       39.99,
		Stock:       12,
		Description: "The definitive guide",
	})

	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "The Go Programming Language", created.Title)
	assert.Equal(t, "Donovan & Kernighan", created.Author)
	assert.Equal(t, 39.99, created.Price)
	assert.Equal(t, 12, created.Stock)
	assert.Equal(t, "The definitive guide", created.Description)

	// Timestamps are stamped together on insert
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
}

func TestService_Create_RoundTrip(t *testing.T) {
	service, _ := newTestBookService()
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{Title: "Dune", Author: "Frank Herbert", Price: 9.5, Stock: 3})
	require.NoError(t, err)

	got, err := service.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestService_Create_Invalid(t *testing.T) {
	service, docStore := newTestBookService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing title", CreateInput{Author: "A", Price: 1}},
		{"missing author", CreateInput{Title: "T", Price: 1}},
		{"negative price", CreateInput{Title: "T", Author: "A", Price: -0.01}},
		{"negative stock", CreateInput{Title: "T", Author: "A", Price: 1, Stock: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := service.Create(ctx, tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, created)
		})
	}
	assert.Empty(t, docStore.CreateCalls)
}

func TestService_Get_NotFound(t *testing.T) {
	service, _ := newTestBookService()
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
	}{
		{"unknown id", "65b2f0c4a7e1d93358c1a001"},
		{"malformed id", "not-a-hex-id"},
		{"empty id", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := service.Get(ctx, tt.id)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Nil(t, b)
		})
	}
}

func TestService_Update_MergesFields(t *testing.T) {
	service, _ := newTestBookService()
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{Title: "Dune", Author: "Frank Herbert", Price: 9.5, Stock: 3})
	require.NoError(t, err)

	newPrice := 12.0
	updated, err := service.Update(ctx, created.ID.Hex(), UpdateInput{Price: &newPrice})

	require.NoError(t, err)
	assert.Equal(t, 12.0, updated.Price)

	// Untouched fields are preserved
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "Frank Herbert", updated.Author)
	assert.Equal(t, 3, updated.Stock)

	// updated_at moves forward, created_at does not
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestService_Update_NotFound(t *testing.T) {
	service, _ := newTestBookService()
	ctx := context.Background()

	price := 5.0
	updated, err := service.Update(ctx, "65b2f0c4a7e1d93358c1a001", UpdateInput{Price: &price})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, updated)

	updated, err = service.Update(ctx, "garbage", UpdateInput{Price: &price})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, updated)
}

func TestService_Update_Invalid(t *testing.T) {
	service, _ := newTestBookService()
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{Title: "Dune", Author: "Frank Herbert", Price: 9.5})
	require.NoError(t, err)

	negative := -1.0
	updated, err := service.Update(ctx, created.ID.Hex(), UpdateInput{Price: &negative})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, updated)

	// Stored price is unchanged
	got, err := service.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 9.5, got.Price)
}

func TestService_Delete(t *testing.T) {
	service, _ := newTestBookService()
	ctx := context.Background()

	created, err := service.Create(ctx, CreateInput{Title: "Dune", Author: "Frank Herbert", Price: 9.5})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID.Hex()))

	_, err = service.Get(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete and malformed ids report not found
	assert.ErrorIs(t, service.Delete(ctx, created.ID.Hex()), ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, "garbage"), ErrNotFound)
}

func TestService_List_NewestFirst(t *testing.T) {
	service, _ := newTestBookService()
	ctx := context.Background()

	first, err := service.Create(ctx, CreateInput{Title: "First", Author: "A", Price: 1})
	require.NoError(t, err)
	second, err := service.Create(ctx, CreateInput{Title: "Second", Author: "A", Price: 2})
	require.NoError(t, err)
	third, err := service.Create(ctx, CreateInput{Title: "Third", Author: "A", Price: 3})
	require.NoError(t, err)

	books, err := service.List(ctx)

	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, third.ID, books[0].ID)
	assert.Equal(t, second.ID, books[1].ID)
	assert.Equal(t, first.ID, books[2].ID)
}

func TestService_List_Empty(t *testing.T) {
	service, _ := newTestBookService()

	books, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, books)
}
