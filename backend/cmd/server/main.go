package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roommate/backend/internal/api"
	"roommate/backend/internal/enricher"
	"roommate/backend/internal/llm"
	"roommate/backend/internal/report"
	"roommate/backend/internal/store"
	"roommate/backend/pkg/config"
	"roommate/backend/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting Roommate API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Load or generate the API password. Shown on every start so the web
	// client can be pointed at a fresh install.
	password, err := config.LoadOrCreateAPIPassword(cfg.PasswordFile)
	if err != nil {
		log.Fatal("Failed to load API password", zap.Error(err))
	}
	log.Info("API password for authorization", zap.String("password", password))

	// Error reporting (Sentry / Nightwatch)
	reporter, err := report.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize error reporting", zap.Error(err))
	}
	defer reporter.Close()

	// Connect to MongoDB
	st := store.NewMongoStore(cfg.MongoURI, cfg.MongoDatabase)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := st.Connect(ctx); err != nil {
		cancel()
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	cancel()
	defer st.Disconnect(context.Background())

	// LLM runtime
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		log.Fatal("Failed to create LLM provider", zap.Error(err))
	}

	// Wire the request pipeline
	enr := enricher.New(st)
	handler := api.NewHandler(provider, st, enr, reporter, cfg.Model)
	limiter := api.NewTrialLimiter(cfg.TrialRequests)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(handler, password, limiter, log)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Roommate server online", zap.String("port", cfg.Port), zap.String("model", cfg.Model))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
