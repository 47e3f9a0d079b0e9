// Package jobs holds the scheduled maintenance tasks.
package jobs

import (
	"context"
	"log"

	"github.com/robfig/cron"

	"github.com/example/bookstore-admin/internal/domain/order"
	"github.com/example/bookstore-admin/internal/infrastructure/store"
)

// Sender delivers a pending-order reminder to a customer.
type Sender interface {
	SendPendingOrderReminder(to, customerName, orderID string, total float64) error
}

// Reminder emails customers whose orders are still pending.
type Reminder struct {
	store  store.DocumentStore
	mailer Sender
}

func NewReminder(ds store.DocumentStore, mailer Sender) *Reminder {
	return &Reminder{store: ds, mailer: mailer}
}

// Schedule registers the reminder to run at midnight every day.
func (r *Reminder) Schedule(c *cron.Cron) error {
	return c.AddFunc("@midnight", r.Run)
}

// Run sends one reminder per pending order.
func (r *Reminder) Run() {
	ctx := context.Background()

	var orders []order.Order
	err := r.store.List(ctx, order.Collection, store.ListOptions{
		Filter: store.Filter{"status": string(order.StatusPending)},
	}, &orders)
	if err != nil {
		log.Printf("[Jobs] Failed to list pending orders: %v", err)
		return
	}

	sent := 0
	for _, o := range orders {
		err := r.mailer.SendPendingOrderReminder(o.CustomerEmail, o.CustomerName, o.ID.Hex(), o.TotalAmount)
		if err != nil {
			log.Printf("[Jobs] Failed to send reminder for order %s: %v", o.ID.Hex(), err)
			continue
		}
		sent++
	}
	log.Printf("[Jobs] Pending order reminders sent: %d/%d", sent, len(orders))
}
