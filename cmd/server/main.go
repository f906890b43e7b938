package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/jwaldner/tetra/internal/audit"
	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/glossary"
	"github.com/jwaldner/tetra/internal/handlers"
	"github.com/jwaldner/tetra/internal/logger"
	"github.com/jwaldner/tetra/internal/rates"
	"github.com/jwaldner/tetra/internal/scenario"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Initialize proper logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("🚀 Tetra option pricing lab starting - Port: %s", cfg.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("⚠️  VERBOSE LOGGING ENABLED - Detailed pricing inputs and solver steps will be logged to %s\n", cfg.Logging.LogFile)
	}

	// Backing services for the API
	rateService := rates.NewService(cfg.Assets.RatesFile)
	scenarioManager := scenario.NewManager(cfg.Assets.ScenariosFile)
	glossaryService := glossary.NewService(cfg.Assets.GlossaryFile)

	logger.Info.Printf("🏛️ Rate curve source: %s", rateService.GetCurve().Source)
	logger.Info.Printf("📖 Glossary loaded: %d terms", len(glossaryService.All()))

	// Numerical audit: verify the pricing kernel before taking traffic
	coordinator := audit.NewCoordinator()
	recorder := audit.NewRecorder()
	defer recorder.Close()

	auditCfg := config.GetAuditConfig()
	if auditCfg.RunOnStartup {
		report := coordinator.RunAll(recorder)
		if !report.Passed {
			logger.Error.Printf("❌ Startup audit failed: %d of %d cases violated invariants",
				report.TotalFailures, report.TotalCases)
		}
	}

	handler := handlers.NewHandler(cfg, rateService, scenarioManager, glossaryService, coordinator, recorder)

	// Setup router
	r := mux.NewRouter()
	r.Use(handlers.RequestID)

	// Serve static files (CSS, JS, images) - NO REBUILD NEEDED
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static/"))))

	// Pages
	r.HandleFunc("/", handler.HomeHandler).Methods("GET")
	r.HandleFunc("/basics", handler.BasicsHandler).Methods("GET")

	// Pricing endpoints
	r.HandleFunc("/api/health", handler.HealthHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/payoff", handler.PayoffHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/price", handler.PriceHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/iv", handler.IVHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/parity", handler.ParityHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/curves", handler.CurvesHandler).Methods("GET", "OPTIONS")

	// Strategy endpoints
	r.HandleFunc("/api/strategy", handler.StrategyHandler).Methods("GET", "POST", "OPTIONS")
	r.HandleFunc("/api/strategies", handler.StrategiesHandler).Methods("GET", "OPTIONS")

	// Reference data endpoints
	r.HandleFunc("/api/glossary", handler.GlossaryHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/scenarios", handler.ScenariosHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/scenarios/{name}", handler.ScenarioHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/rates", handler.RatesHandler).Methods("GET", "OPTIONS")

	// Server-rendered charts and CSV exports
	r.HandleFunc("/api/payoff/chart.png", handler.PayoffChartHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/strategy/chart.png", handler.StrategyChartHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/export/payoff.csv", handler.PayoffCSVHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/export/strategy.csv", handler.StrategyCSVHandler).Methods("GET", "OPTIONS")

	// Audit endpoints
	r.HandleFunc("/api/audit/run", handler.AuditRunHandler).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/audit/checks", handler.AuditChecksHandler).Methods("GET", "OPTIONS")

	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: r,
	}

	// Start server
	fmt.Printf("🌐 Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("🌐 Server starting on http://localhost:%s", cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		log.Fatal("Server failed to start:", err)
	case <-ctx.Done():
		logger.Always.Printf("🛑 Shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("❌ Shutdown error: %v", err)
		}
		logger.Always.Printf("✅ Server stopped")
	}
}
