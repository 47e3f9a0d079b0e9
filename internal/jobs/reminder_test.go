package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bookstore-admin/internal/domain/order"
	"github.com/example/bookstore-admin/internal/infrastructure/store/mocks"
)

type fakeSender struct {
	sent     []string // order ids
	failWith error
}

func (f *fakeSender) SendPendingOrderReminder(to, customerName, orderID string, total float64) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, orderID)
	return nil
}

func seedOrder(t *testing.T, docStore *mocks.MockDocumentStore, status order.Status) string {
	t.Helper()
	id, err := docStore.Create(context.Background(), order.Collection, order.Order{
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		Items:         []order.OrderItem{{BookID: "b1", Price: 10, Quantity: 1}},
		TotalAmount:   10,
		Status:        status,
	})
	require.NoError(t, err)
	return id
}

func TestReminder_Run_SendsForPendingOnly(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	sender := &fakeSender{}
	reminder := NewReminder(docStore, sender)

	pending1 := seedOrder(t, docStore, order.StatusPending)
	seedOrder(t, docStore, order.StatusShipped)
	pending2 := seedOrder(t, docStore, order.StatusPending)
	seedOrder(t, docStore, order.StatusCancelled)

	reminder.Run()

	assert.ElementsMatch(t, []string{pending1, pending2}, sender.sent)
}

func TestReminder_Run_NoPendingOrders(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	sender := &fakeSender{}
	reminder := NewReminder(docStore, sender)

	seedOrder(t, docStore, order.StatusDelivered)

	reminder.Run()

	assert.Empty(t, sender.sent)
}

func TestReminder_Run_SendFailureDoesNotAbort(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	sender := &fakeSender{failWith: errors.New("smtp down")}
	reminder := NewReminder(docStore, sender)

	seedOrder(t, docStore, order.StatusPending)

	// Must not panic; failures are logged per order
	reminder.Run()
	assert.Empty(t, sender.sent)
}
