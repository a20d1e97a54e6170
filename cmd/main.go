package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/menuqrs/menuqr/internal/adapter/logger"
	"github.com/menuqrs/menuqr/internal/adapter/postgres"
	"github.com/menuqrs/menuqr/internal/adapter/qrimage"
	"github.com/menuqrs/menuqr/internal/adapter/rabbitmq"
	"github.com/menuqrs/menuqr/internal/app/analytics"
	"github.com/menuqrs/menuqr/internal/app/ingest"
	"github.com/menuqrs/menuqr/internal/app/public"
	"github.com/menuqrs/menuqr/internal/app/qrcode"
	"github.com/menuqrs/menuqr/internal/app/registry"
	"github.com/menuqrs/menuqr/internal/app/widget"
	"github.com/menuqrs/menuqr/internal/config"

	amqpAdapter "github.com/menuqrs/menuqr/internal/adapter/amqp"
	httpAdapter "github.com/menuqrs/menuqr/internal/adapter/http"
)

func main() {
	// Parse command-line flags
	mode := flag.String("mode", "", "Service mode: server, view-ingest-worker")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	prefetch := flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx := context.Background()

	// Initialize logger
	lgr := logger.New(*mode)

	// Connect to PostgreSQL
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	// Connect to RabbitMQ
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	switch *mode {
	case "server":
		runServer(db, mqConn, lgr, cfg)

	case "view-ingest-worker":
		runViewIngestWorker(ctx, db, mqConn, lgr, *prefetch)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runServer(db postgres.DB, mqConn rabbitmq.Connection, lgr logger.Logger, cfg *config.Config) {
	// Initialize repositories
	orgRepo := postgres.NewOrganizationRepository(db)
	menuRepo := postgres.NewMenuRepository(db)
	qrRepo := postgres.NewQRCodeRepository(db)
	viewRepo := postgres.NewViewEventRepository(db)

	// Initialize messaging
	publisher := rabbitmq.NewPublisher(mqConn)

	// Initialize services
	registryService := registry.NewService(orgRepo, menuRepo, lgr)
	publicService := public.NewService(orgRepo, menuRepo, publisher, lgr)
	qrService := qrcode.NewService(menuRepo, qrRepo, viewRepo, qrimage.NewRenderer(), lgr, cfg.Server.BaseDomain)
	analyticsService := analytics.NewService(orgRepo, viewRepo, lgr)
	widgetService := widget.NewService(orgRepo, lgr)

	handler := httpAdapter.NewRouter(registryService, publicService, qrService, analyticsService, widgetService, lgr)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Server started on port %d", cfg.Server.Port), "startup", map[string]interface{}{
		"port":        cfg.Server.Port,
		"base_domain": cfg.Server.BaseDomain,
	})

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down server", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runViewIngestWorker(ctx context.Context, db postgres.DB, mqConn rabbitmq.Connection, lgr logger.Logger, prefetch int) {
	// Initialize repositories
	viewRepo := postgres.NewViewEventRepository(db)

	// Initialize service
	ingestService := ingest.NewService(viewRepo, lgr)

	// Initialize AMQP handler
	viewHandler := amqpAdapter.NewViewEventHandler(ingestService, lgr)

	consumer := rabbitmq.NewConsumer(mqConn, prefetch)

	lgr.Info("service_started", "View ingest worker started", "startup", map[string]interface{}{
		"prefetch": prefetch,
	})

	// Start consuming messages
	go func() {
		if err := consumer.ConsumeViewEvents(ctx, viewHandler.HandleViewEvent); err != nil {
			lgr.Error("consumer_error", "Error consuming view events", "runtime", nil, err)
		}
	}()

	// Wait for shutdown signal
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down view ingest worker", "shutdown", nil)
}
