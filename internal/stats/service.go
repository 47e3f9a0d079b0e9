// Package stats computes the dashboard aggregates. Every read recomputes
// from the store; nothing is cached.
package stats

import (
	"context"
	"fmt"

	"github.com/example/bookstore-admin/internal/domain/book"
	"github.com/example/bookstore-admin/internal/domain/order"
	"github.com/example/bookstore-admin/internal/infrastructure/store"
)

// Snapshot is one dashboard read.
type Snapshot struct {
	TotalBooks    int64   `json:"total_books"`
	TotalOrders   int64   `json:"total_orders"`
	PendingOrders int64   `json:"pending_orders"`
	Revenue       float64 `json:"revenue"`
}

type Service struct {
	store store.DocumentStore
}

func NewService(ds store.DocumentStore) *Service {
	return &Service{store: ds}
}

// Snapshot counts books and orders and sums revenue over all orders that
// are not cancelled. Revenue is 0 when no such orders exist.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	totalBooks, err := s.store.Count(ctx, book.Collection, nil)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	totalOrders, err := s.store.Count(ctx, order.Collection, nil)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	pendingOrders, err := s.store.Count(ctx, order.Collection, store.Filter{
		"status": string(order.StatusPending),
	})
	if err != nil {
		return nil, fmt.Errorf("count pending orders: %w", err)
	}
	revenue, err := s.store.SumField(ctx, order.Collection, "total_amount", store.Filter{
		"status": store.NotEqual(string(order.StatusCancelled)),
	})
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	return &Snapshot{
		TotalBooks:    totalBooks,
		TotalOrders:   totalOrders,
		PendingOrders: pendingOrders,
		Revenue:       revenue,
	}, nil
}
