package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"invoicing-dashboard-backend/internal/auth"
	"invoicing-dashboard-backend/internal/cache"
	"invoicing-dashboard-backend/internal/config"
	"invoicing-dashboard-backend/internal/db"
	"invoicing-dashboard-backend/internal/handler"
	"invoicing-dashboard-backend/internal/repository"
	"invoicing-dashboard-backend/internal/service"
)

func main() {
	// Load .env if present; deployed environments set variables directly
	_ = godotenv.Load()

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting invoicing dashboard API server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to database
	database, err := db.New(db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("connected to database")

	// Connect to Redis
	store, err := cache.NewStore(cache.Config{URL: cfg.Redis.URL}, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(database.DB)
	customerRepo := repository.NewCustomerRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)
	revenueRepo := repository.NewRevenueRepository(database.DB)

	// Initialize services
	credentials := auth.NewCredentialsProvider(userRepo, logger)

	invoiceSvc := service.NewInvoiceService(invoiceRepo, store.Pages(), cfg.Cache.PageTTL, logger)
	customerSvc := service.NewCustomerService(customerRepo, store.Pages(), cfg.Cache.PageTTL, logger)
	dashboardSvc := service.NewDashboardService(invoiceRepo, customerRepo, revenueRepo, store.Pages(), cfg.Cache.PageTTL, logger)
	authSvc := service.NewAuthService(credentials, store.Sessions(), cfg.Session.TTL, logger)

	// Initialize handlers
	invoiceHandler := handler.NewInvoiceHandler(invoiceSvc, logger)
	customerHandler := handler.NewCustomerHandler(customerSvc, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, logger)
	authHandler := handler.NewAuthHandler(authSvc, cfg.Session.CookieName, cfg.Session.TTL, logger)
	healthHandler := handler.NewHealthHandler(database.DB, store, logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(handler.RecoveryMiddleware(logger))
	r.Use(handler.LoggingMiddleware(logger))
	r.Use(handler.CORSMiddleware)

	// Register routes
	r.Get("/health", healthHandler.Health)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(handler.RequireAuth(authSvc, cfg.Session.CookieName))

		r.Get("/", dashboardHandler.Summary)

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", invoiceHandler.ListInvoices)
			r.Post("/", invoiceHandler.CreateInvoice)
			r.Get("/{id}", invoiceHandler.GetInvoice)
			r.Post("/{id}", invoiceHandler.UpdateInvoice)
			r.Post("/{id}/delete", invoiceHandler.DeleteInvoice)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", customerHandler.ListCustomers)
			r.Get("/options", customerHandler.CustomerOptions)
			r.Post("/", customerHandler.CreateCustomer)
			r.Post("/{id}", customerHandler.UpdateCustomer)
			r.Post("/{id}/delete", customerHandler.DeleteCustomer)
		})
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
