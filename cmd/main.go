package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"comanda/internal/auth"
	"comanda/internal/config"
	"comanda/internal/database"
	"comanda/internal/logger"
	"comanda/internal/messaging"
	"comanda/internal/server"
	"comanda/internal/services/catalog"
	"comanda/internal/services/identity"
	"comanda/internal/services/ledger"
)

func main() {
	var (
		configPath     = flag.String("config", "config.yaml", "Path to configuration file")
		migrationsPath = flag.String("migrations", "migrations", "Path to SQL migrations directory")
	)
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("comanda")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting comanda", requestID, map[string]interface{}{
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log, *migrationsPath); err != nil {
		log.Error("service_failed", "Service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, migrationsPath string) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	tokens := auth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	identityService := identity.NewService(identity.NewRepository(db), tokens, log)
	catalogService := catalog.NewService(catalog.NewRepository(db), log)
	ledgerService := ledger.NewService(
		ledger.NewRepository(db),
		publisher,
		ledger.CheckQRGenerator{BaseURL: cfg.Server.BaseURL},
		log,
	)

	router := server.NewRouter(log, cfg.Server.AllowedOrigin, db, conn,
		identity.NewHandler(identityService, log),
		catalog.NewHandler(catalogService, log),
		ledger.NewHandler(ledgerService, log),
	)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("server_listening", fmt.Sprintf("Listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return httpServer.Shutdown(shutdownCtx)
}
