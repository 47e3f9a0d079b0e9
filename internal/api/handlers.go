package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/bookstore-admin/internal/domain/admin"
	"github.com/example/bookstore-admin/internal/domain/book"
	"github.com/example/bookstore-admin/internal/domain/order"
	"github.com/example/bookstore-admin/internal/infrastructure/store"
	"github.com/example/bookstore-admin/internal/stats"
)

type Handlers struct {
	books  *book.Service
	orders *order.Service
	stats  *stats.Service
	client *store.Client // nil when the store never came up
}

func NewHandlers(books *book.Service, orders *order.Service, statsSvc *stats.Service, client *store.Client) *Handlers {
	return &Handlers{
		books:  books,
		orders: orders,
		stats:  statsSvc,
		client: client,
	}
}

// Book Handlers

func (h *Handlers) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if books == nil {
		books = []book.Book{}
	}
	respondJSON(w, http.StatusOK, books)
}

func (h *Handlers) CreateBook(w http.ResponseWriter, r *http.Request) {
	var in book.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.books.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) GetBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	b, err := h.books.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handlers) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var in book.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.books.Update(r.Context(), id, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.books.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Order Handlers

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in order.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.orders.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Dashboard

func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.stats.Snapshot(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// Health reports store connectivity. Advisory only.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		respondJSON(w, http.StatusOK, store.Health{Error: "store not configured"})
		return
	}
	respondJSON(w, http.StatusOK, h.client.Health(r.Context()))
}

// Helpers

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondServiceError maps domain errors onto HTTP status codes. Raw store
// errors never reach the client beyond a generic message.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, book.ErrNotFound), errors.Is(err, order.ErrNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, book.ErrInvalidInput), errors.Is(err, order.ErrInvalidInput),
		errors.Is(err, order.ErrEmptyOrder), errors.Is(err, order.ErrInvalidStatus):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, admin.ErrInvalidCredentials):
		respondJSONError(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, admin.ErrInactiveAccount):
		respondJSONError(w, "Account is inactive", http.StatusForbidden)
	case errors.Is(err, admin.ErrUnauthorizedRole):
		respondJSONError(w, "Unauthorized role", http.StatusForbidden)
	case errors.Is(err, store.ErrUnavailable):
		respondJSONError(w, "Store unavailable", http.StatusServiceUnavailable)
	default:
		respondJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
