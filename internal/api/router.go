package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/example/bookstore-admin/internal/api/middleware"
	"github.com/example/bookstore-admin/internal/auth"
	"github.com/example/bookstore-admin/internal/metrics"
)

type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	JWTService   *auth.JWTService
	Metrics      *metrics.ServerMetrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Public
	r.HandleFunc("/auth/login", cfg.AuthHandlers.Login).Methods(http.MethodPost)
	r.HandleFunc("/health", cfg.Handlers.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// Staff only
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTService))

	protected.HandleFunc("/books", cfg.Handlers.ListBooks).Methods(http.MethodGet)
	protected.HandleFunc("/books", cfg.Handlers.CreateBook).Methods(http.MethodPost)
	protected.HandleFunc("/books/{id}", cfg.Handlers.GetBook).Methods(http.MethodGet)
	protected.HandleFunc("/books/{id}", cfg.Handlers.UpdateBook).Methods(http.MethodPut)
	protected.HandleFunc("/books/{id}", cfg.Handlers.DeleteBook).Methods(http.MethodDelete)

	protected.HandleFunc("/orders", cfg.Handlers.ListOrders).Methods(http.MethodGet)
	protected.HandleFunc("/orders", cfg.Handlers.CreateOrder).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{id}/status", cfg.Handlers.UpdateOrderStatus).Methods(http.MethodPut)

	protected.HandleFunc("/admin/stats", cfg.Handlers.GetStats).Methods(http.MethodGet)

	r.Use(withLogging)
	if cfg.Metrics != nil {
		r.Use(withMetrics(cfg.Metrics))
	}
	return r
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func withMetrics(m *metrics.ServerMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			handler := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					handler = tmpl
				}
			}
			m.Requests.WithLabelValues(handler, strconv.Itoa(rec.status)).Inc()
			m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
		})
	}
}
