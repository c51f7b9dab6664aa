package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pocket-balance/internal/api"
	"pocket-balance/internal/api/handlers"
	"pocket-balance/internal/repository"
	"pocket-balance/internal/service"
	"pocket-balance/pkg/config"
	"pocket-balance/pkg/logger"

	"go.uber.org/zap"
)

// @title Pocket Balance API
// @version 1.0
// @description Single-user budget tracker: transactions, category totals and LLM budget advice

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Pocket Balance service",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("llm_provider", cfg.LLM.Provider),
	)

	ctx := context.Background()

	// Initialize storage
	store, closeStore, err := repository.NewTransactionStore(ctx, cfg, logger.Component("store"))
	if err != nil {
		logger.Fatal("Failed to initialize transaction store", zap.Error(err))
	}
	defer closeStore()

	// Initialize services
	txService := service.NewTransactionService(store, logger.Component("transactions"))

	llmClient, err := service.NewLLMClient(ctx, cfg, logger.Component("llm"))
	if err != nil {
		logger.Fatal("Failed to initialize LLM client", zap.Error(err))
	}
	if llmClient != nil {
		defer llmClient.Close()
	}

	adviceService := service.NewAdviceService(llmClient, cfg.LLM.Timeout, cfg.LLM.Currency, logger.Component("advice"))

	// Initialize handlers
	txHandler := handlers.NewTransactionHandler(txService, logger.Component("transactions"))
	adviceHandler := handlers.NewAdviceHandler(txService, adviceService)
	healthHandler := handlers.NewHealthHandler(cfg.Storage.Backend, cfg.LLM.Provider)

	// Setup router
	app := api.SetupRouter(&cfg.Server, txHandler, adviceHandler, healthHandler, logger.Component("http"))

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}
