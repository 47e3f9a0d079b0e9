package order

import (
	"context"
	"fmt"
	"log"

	"github.com/example/bookstore-admin/internal/infrastructure/events"
	"github.com/example/bookstore-admin/internal/infrastructure/store"
)

// Event types emitted by the order workflow.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderCreated is the payload of EventOrderCreated.
type OrderCreated struct {
	OrderID       string  `json:"order_id"`
	CustomerEmail string  `json:"customer_email"`
	TotalAmount   float64 `json:"total_amount"`
}

// OrderStatusChanged is the payload of EventOrderStatusChanged.
type OrderStatusChanged struct {
	OrderID string `json:"order_id"`
	Status  Status `json:"status"`
}

// Service enforces order creation and status update rules.
type Service struct {
	store     store.DocumentStore
	publisher events.Publisher
}

func NewService(ds store.DocumentStore, publisher events.Publisher) *Service {
	return &Service{store: ds, publisher: publisher}
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := s.store.List(ctx, Collection, store.ListOptions{
		Sort: []store.SortField{{Field: "created_at", Desc: true}},
	}, &orders)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns the order with the given id.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	var o Order
	found, err := s.store.GetByID(ctx, Collection, id, &o)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &o, nil
}

// Create validates the input, computes the total from the line items, and
// persists a new order with status pending.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	id, err := s.store.Create(ctx, Collection, Order{
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Items:         in.Items,
		TotalAmount:   Total(in.Items),
		Status:        StatusPending,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	created, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, id, events.NewEnvelope(EventOrderCreated, OrderCreated{
		OrderID:       id,
		CustomerEmail: created.CustomerEmail,
		TotalAmount:   created.TotalAmount,
	}))
	return created, nil
}

// UpdateStatus moves the order to the target status. Membership in the
// allowed set is the only rule; there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*Order, error) {
	target := Status(status)
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	modified, err := s.store.Update(ctx, Collection, id, map[string]any{"status": string(target)})
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if !modified {
		return nil, ErrNotFound
	}
	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, id, events.NewEnvelope(EventOrderStatusChanged, OrderStatusChanged{
		OrderID: id,
		Status:  target,
	}))
	return updated, nil
}

func (s *Service) publish(ctx context.Context, key string, env events.Envelope) {
	if err := s.publisher.Publish(ctx, key, env); err != nil {
		log.Printf("[Orders] Failed to publish %s for %s: %v", env.Type, key, err)
	}
}
