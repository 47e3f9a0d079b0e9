package order

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is the document collection holding orders.
const Collection = "order"

// Status is an order's position in the fulfillment workflow.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// allowedStatuses is a flat set: any member may move to any other member.
var allowedStatuses = map[Status]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// Valid reports whether s is a member of the allowed status set.
func (s Status) Valid() bool {
	return allowedStatuses[s]
}

var (
	ErrNotFound      = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order must have at least one item")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrInvalidInput  = errors.New("invalid order input")
)

// OrderItem is a line item. Title and price are snapshots taken at order
// time and do not follow later catalog changes.
type OrderItem struct {
	BookID   string  `bson:"book_id" json:"book_id"`
	Title    string  `bson:"title" json:"title"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// Order is a customer order.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName  string             `bson:"customer_name" json:"customer_name"`
	CustomerEmail string             `bson:"customer_email" json:"customer_email"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"total_amount" json:"total_amount"`
	Status        Status             `bson:"status" json:"status"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at,omitempty" json:"updated_at"`
}

// Total computes the order total as the exact sum of price times quantity.
func Total(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// CreateInput carries the fields for a new order.
type CreateInput struct {
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Items         []OrderItem `json:"items"`
	Notes         string      `json:"notes"`
}

// Validate checks the field constraints.
func (in CreateInput) Validate() error {
	if in.CustomerName == "" {
		return fmt.Errorf("%w: customer_name is required", ErrInvalidInput)
	}
	if in.CustomerEmail == "" {
		return fmt.Errorf("%w: customer_email is required", ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return ErrEmptyOrder
	}
	for i, it := range in.Items {
		if it.BookID == "" {
			return fmt.Errorf("%w: item %d missing book_id", ErrInvalidInput, i)
		}
		if it.Price < 0 {
			return fmt.Errorf("%w: item %d price must be non-negative", ErrInvalidInput, i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrInvalidInput, i)
		}
	}
	return nil
}
