package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skywatch-service/internal/infrastructure/config"
	"skywatch-service/internal/infrastructure/oauth"
	"skywatch-service/internal/infrastructure/persistence"
	"skywatch-service/internal/interface/amadeus"
	"skywatch-service/internal/interface/quotesource"
	mongoRepo "skywatch-service/internal/interface/repository"
	"skywatch-service/internal/usecase"
	"skywatch-service/pkg/logger"
	"skywatch-service/pkg/metrics"

	domainRepo "skywatch-service/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("test").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.Environment)
	log.Info("Starting SkyWatch Service", "version", cfg.AppVersion, "mode", cfg.Mode)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Migrate and seed the monitored route/airline matrix
	if err := mongoRepo.SeedReferenceData(gormDB); err != nil {
		log.Fatal("Failed to seed reference data", "error", err)
	}

	// Set up repositories
	routeRepository := mongoRepo.NewGormRouteRepository(gormDB)
	historyRepository := mongoRepo.NewMongoHistoryRepository(db)
	alertRepository := mongoRepo.NewMongoAlertRepository(db)

	// Select the quote source by configuration
	var source domainRepo.QuoteSource
	switch cfg.Mode {
	case config.ModeLive:
		amadeusOAuth := oauth.NewAmadeusOAuth(cfg.AmadeusAPIKey, cfg.AmadeusAPISecret, cfg.AmadeusBaseURL(), log)
		client := amadeus.NewClient(cfg.AmadeusBaseURL(), amadeusOAuth.HTTPClient(ctx), log)
		source = quotesource.NewCallBudget(quotesource.NewAmadeusSource(client, log), cfg.MonthlyCallBudget)
	default:
		source = quotesource.NewMockSource(cfg.MockLatency, log)
	}

	// Set up the fetch pipeline
	m := metrics.NewMetrics("skywatch")
	orchestrator := usecase.NewFetchOrchestrator(routeRepository, historyRepository, source, cfg.FetchConcurrency, cfg.FetchTimeout, log)
	engine := usecase.NewAlertEngine(alertRepository, log)
	scheduler := usecase.NewScheduler(orchestrator, engine, cfg.FetchInterval, m, log)

	// Start the periodic fetch loop
	go scheduler.Start(ctx)

	// Run an initial fetch in the background so the dashboard has data
	// without waiting a full interval
	go func() {
		if _, err := scheduler.RunFetchCycle(ctx); err != nil && !errors.Is(err, usecase.ErrRunInProgress) {
			log.Error("Initial fetch cycle failed", "error", err)
		}
	}()

	// Set up HTTP server for metrics and the manual trigger
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("/api/fetch-now", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		summary, err := scheduler.RunFetchCycle(r.Context())
		if errors.Is(err, usecase.ErrRunInProgress) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeJSON(w, summary, log)
	})
	mux.HandleFunc("/api/scheduler/status", func(w http.ResponseWriter, r *http.Request) {
		status := scheduler.Status()
		writeJSON(w, status, log)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the scheduler

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("SkyWatch Service stopped")
}

func writeJSON(w http.ResponseWriter, v interface{}, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
