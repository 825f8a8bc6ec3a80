package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api"
	"github.com/mvanholst/portfolio-tracker-backend/internal/config"
	"github.com/mvanholst/portfolio-tracker-backend/internal/database"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	settingsService := service.NewSettingsService(settingsRepo, cfg)
	performanceService := service.NewPerformanceService(assetRepo)
	assetService := service.NewAssetService(assetRepo, performanceService)
	tradeService := service.NewTradeService(db, assetRepo, transactionRepo)
	taxService := service.NewTaxService(transactionRepo)
	plannerService := service.NewPlannerService(assetRepo, settingsService, tradeService)
	rebalanceService := service.NewRebalanceService(assetRepo, settingsService)
	snapshotService := service.NewSnapshotService(db, assetRepo, transactionRepo)

	backupService, err := service.NewBackupService(snapshotService, cfg.Backup)
	if err != nil {
		log.Fatalf("Failed to configure backups: %v", err)
	}
	if backupService != nil {
		if err := backupService.Start(); err != nil {
			log.Fatalf("Failed to start backup scheduler: %v", err)
		}
		defer backupService.Stop()
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:          systemService,
		Asset:           assetService,
		Trade:           tradeService,
		Tax:             taxService,
		Planner:         plannerService,
		Rebalance:       rebalanceService,
		Performance:     performanceService,
		Settings:        settingsService,
		Snapshot:        snapshotService,
		Backup:          backupService,
		TransactionRepo: transactionRepo,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
