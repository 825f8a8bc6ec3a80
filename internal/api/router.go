package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvanholst/portfolio-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/mvanholst/portfolio-tracker-backend/internal/api/middleware"
	"github.com/mvanholst/portfolio-tracker-backend/internal/config"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
	"github.com/mvanholst/portfolio-tracker-backend/internal/service"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	System          *service.SystemService
	Asset           *service.AssetService
	Trade           *service.TradeService
	Tax             *service.TaxService
	Planner         *service.PlannerService
	Rebalance       *service.RebalanceService
	Performance     *service.PerformanceService
	Settings        *service.SettingsService
	Snapshot        *service.SnapshotService
	Backup          *service.BackupService
	TransactionRepo *repository.TransactionRepository
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svcs.Asset)
			tradeHandler := handlers.NewTradeHandler(svcs.Trade)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)
			r.Get("/summary", assetHandler.Summary)
			r.Route("/{ticker}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTickerMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/price", assetHandler.SetPrice)
				r.Put("/weight", assetHandler.SetTargetWeight)
				r.Post("/buy", tradeHandler.Buy)
				r.Post("/sell", tradeHandler.Sell)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svcs.TransactionRepo)
			r.Get("/", transactionHandler.Transactions)
			r.Get("/{id}", transactionHandler.GetTransaction)
		})

		r.Route("/tax", func(r chi.Router) {
			taxHandler := handlers.NewTaxHandler(svcs.Tax)
			r.Get("/{fyStartYear}", taxHandler.FinancialYearSummary)
		})

		r.Route("/planner", func(r chi.Router) {
			plannerHandler := handlers.NewPlannerHandler(svcs.Planner)
			r.Post("/plan", plannerHandler.Plan)
			r.Post("/allocate", plannerHandler.Allocate)
		})

		r.Route("/rebalance", func(r chi.Router) {
			rebalanceHandler := handlers.NewRebalanceHandler(svcs.Rebalance)
			r.Get("/", rebalanceHandler.Drift)
		})

		r.Route("/performance", func(r chi.Router) {
			performanceHandler := handlers.NewPerformanceHandler(svcs.Performance)
			r.Get("/", performanceHandler.Growth)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(svcs.Settings)
			r.Get("/", settingsHandler.Settings)
			r.Put("/", settingsHandler.UpdateSettings)
		})

		r.Route("/snapshot", func(r chi.Router) {
			snapshotHandler := handlers.NewSnapshotHandler(svcs.Snapshot, svcs.Backup)
			r.Get("/", snapshotHandler.Export)
			r.Get("/csv", snapshotHandler.ExportCSV)
			r.Post("/import", snapshotHandler.Import)
			r.Post("/reset", snapshotHandler.Reset)
			r.Post("/backup", snapshotHandler.Backup)
		})
	})

	return r
}
