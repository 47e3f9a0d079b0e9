package book

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is the document collection holding books.
const Collection = "book"

var (
	ErrNotFound     = errors.New("book not found")
	ErrInvalidInput = errors.New("invalid book input")
)

// Book is a catalog entry.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CoverURL    string             `bson:"cover_url,omitempty" json:"cover_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updated_at"`
}

// CreateInput carries the fields for a new book.
type CreateInput struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	CoverURL    string  `json:"cover_url"`
}

// Validate checks the field constraints.
func (in CreateInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Author == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", ErrInvalidInput)
	}
	return nil
}

// UpdateInput carries a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Description *string  `json:"description"`
	CoverURL    *string  `json:"cover_url"`
}

// Validate checks the constraints of the fields that are set.
func (in UpdateInput) Validate() error {
	if in.Title != nil && *in.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}
	if in.Author != nil && *in.Author == "" {
		return fmt.Errorf("%w: author cannot be empty", ErrInvalidInput)
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", ErrInvalidInput)
	}
	return nil
}

// fields returns the set fields as a partial document.
func (in UpdateInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Author != nil {
		fields["author"] = *in.Author
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Stock != nil {
		fields["stock"] = *in.Stock
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.CoverURL != nil {
		fields["cover_url"] = *in.CoverURL
	}
	return fields
}
