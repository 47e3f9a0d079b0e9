package book

import (
	"context"
	"fmt"

	"github.com/example/bookstore-admin/internal/infrastructure/store"
)

// Service provides catalog operations over the document store.
type Service struct {
	store store.DocumentStore
}

func NewService(ds store.DocumentStore) *Service {
	return &Service{store: ds}
}

// List returns all books, newest first.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	var books []Book
	err := s.store.List(ctx, Collection, store.ListOptions{
		Sort: []store.SortField{{Field: "created_at", Desc: true}},
	}, &books)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Create validates and persists a new book, returning the stored document.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Book, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	id, err := s.store.Create(ctx, Collection, Book{
		Title:       in.Title,
		Author:      in.Author,
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Description,
		CoverURL:    in.CoverURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return s.Get(ctx, id)
}

// Get returns the book with the given id.
func (s *Service) Get(ctx context.Context, id string) (*Book, error) {
	var b Book
	found, err := s.store.GetByID(ctx, Collection, id, &b)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &b, nil
}

// Update merges the set fields into the book and returns the updated
// document.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Book, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	modified, err := s.store.Update(ctx, Collection, id, in.fields())
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if !modified {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, Collection, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
