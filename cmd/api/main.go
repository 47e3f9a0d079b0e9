package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron"

	"github.com/example/bookstore-admin/internal/api"
	"github.com/example/bookstore-admin/internal/auth"
	"github.com/example/bookstore-admin/internal/domain/admin"
	"github.com/example/bookstore-admin/internal/domain/book"
	"github.com/example/bookstore-admin/internal/domain/order"
	"github.com/example/bookstore-admin/internal/email"
	"github.com/example/bookstore-admin/internal/infrastructure/events"
	"github.com/example/bookstore-admin/internal/infrastructure/store"
	"github.com/example/bookstore-admin/internal/jobs"
	"github.com/example/bookstore-admin/internal/metrics"
	"github.com/example/bookstore-admin/internal/stats"
)

func main() {
	// Configuration from environment variables
	mongoURI := getEnv("DATABASE_URL", "mongodb://localhost:27017")
	mongoDB := getEnv("DATABASE_NAME", "bookstore")
	listenAddr := ":" + getEnv("PORT", "8080")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := getEnv("SMTP_PORT", "587")
	smtpFrom := getEnv("SMTP_FROM", "noreply@bookstore.example.com")
	adminName := getEnv("ADMIN_NAME", "Admin")
	adminEmail := getEnv("ADMIN_EMAIL", "admin@example.com")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin123")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("[API] JWT_SECRET environment variable is required")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("[API] JWT_SECRET must be at least 32 characters long")
	}

	log.Println("[API] ========================================")
	log.Println("[API] Bookstore Admin API")
	log.Println("[API] ========================================")
	log.Printf("[API] Database: %s", mongoDB)

	// Connect to MongoDB. A failed connection is logged, not fatal: the
	// server still answers /health, and store-backed endpoints report the
	// store as unavailable.
	var client *store.Client
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := store.Connect(connectCtx, mongoURI, mongoDB)
	connectCancel()
	if err != nil {
		log.Printf("[API] MongoDB unavailable: %v", err)
		client = nil
	} else {
		log.Println("[API] Connected to MongoDB")
		defer func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			_ = client.Close(closeCtx)
		}()
	}

	var documents *store.MongoStore
	if client != nil {
		documents = store.NewMongoStore(client.Database())
	} else {
		documents = store.NewMongoStore(nil)
	}

	// Order event publishing is optional; without brokers it is a no-op.
	var publisher events.Publisher = events.NoopPublisher{}
	if brokersStr := os.Getenv("KAFKA_BROKERS"); brokersStr != "" {
		brokers := strings.Split(brokersStr, ",")
		topic := getEnv("KAFKA_TOPIC", "bookstore-events")
		log.Printf("[API] Kafka: %v topic=%s", brokers, topic)
		kafkaPublisher := events.NewKafkaPublisher(brokers, topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Initialize JWT service
	jwtService := auth.NewJWTService(jwtSecret, 24*time.Hour)

	// Initialize domain services
	bookSvc := book.NewService(documents)
	orderSvc := order.NewService(documents, publisher)
	adminSvc := admin.NewService(documents, jwtService)
	statsSvc := stats.NewService(documents)

	// Seed a default admin account on first start
	if client != nil {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := adminSvc.EnsureDefault(seedCtx, adminName, adminEmail, adminPassword); err != nil {
			log.Printf("[API] Failed to seed default admin: %v", err)
		}
		seedCancel()
	}

	// Schedule the pending-order reminder
	mailer := email.NewService(smtpHost, smtpPort, smtpFrom)
	scheduler := cron.New()
	reminder := jobs.NewReminder(documents, mailer)
	if err := reminder.Schedule(scheduler); err != nil {
		log.Fatalf("[API] Failed to schedule reminder job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize API
	serverMetrics := metrics.NewServerMetrics("api")
	handlers := api.NewHandlers(bookSvc, orderSvc, statsSvc, client)
	authHandlers := api.NewAuthHandlers(adminSvc)
	router := api.NewRouter(api.RouterConfig{
		Handlers:     handlers,
		AuthHandlers: authHandlers,
		JWTService:   jwtService,
		Metrics:      serverMetrics,
	})

	// Start HTTP server
	server := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server started on %s", listenAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
