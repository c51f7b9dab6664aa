package main

import (
	"context"
	"flag"
	"log"
	"time"

	"pocket-balance/internal/models"
	"pocket-balance/internal/repository"
	"pocket-balance/internal/service"
	"pocket-balance/pkg/config"
	"pocket-balance/pkg/logger"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// demoMonth is a typical month: 5000 income against 3500 of outgoings.
func demoMonth(year int, month time.Month) []models.NewTransaction {
	day := func(d int) civil.Date {
		return civil.Date{Year: year, Month: month, Day: d}
	}
	return []models.NewTransaction{
		{Description: "Monthly salary", Amount: decimal.NewFromInt(5000), Date: day(1), Category: models.CategoryIncoming},
		{Description: "Rent", Amount: decimal.NewFromInt(1500), Date: day(2), Category: models.CategoryPayments},
		{Description: "Utilities", Amount: decimal.NewFromInt(500), Date: day(5), Category: models.CategoryPayments},
		{Description: "Groceries and dining out", Amount: decimal.NewFromInt(700), Date: day(9), Category: models.CategoryPersonal},
		{Description: "Cinema and books", Amount: decimal.NewFromInt(300), Date: day(16), Category: models.CategoryPersonal},
		{Description: "Emergency fund deposit", Amount: decimal.NewFromInt(500), Date: day(20), Category: models.CategorySavings},
	}
}

func main() {
	reset := flag.Bool("reset", false, "remove existing transactions before seeding")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	store, closeStore, err := repository.NewTransactionStore(ctx, cfg, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize transaction store", zap.Error(err))
	}
	defer closeStore()

	txService := service.NewTransactionService(store, appLogger)

	if *reset {
		logger.Warn("Removing existing transactions before seeding")
		for _, tx := range txService.GetFinancialData(ctx).Transactions {
			if err := txService.DeleteTransaction(ctx, tx.ID); err != nil {
				logger.Fatal("Failed to reset transactions", zap.Error(err))
			}
		}
	}

	logger.Info("Starting demo data seeding...", zap.String("storage", cfg.Storage.Backend))

	today := civil.DateOf(time.Now())
	for _, candidate := range demoMonth(today.Year, today.Month) {
		if _, err := txService.AddTransaction(ctx, candidate); err != nil {
			logger.Fatal("Failed to seed transaction",
				zap.String("description", candidate.Description),
				zap.Error(err),
			)
		}
	}

	snapshot := txService.GetFinancialData(ctx)
	logger.Info("Demo data seeding completed successfully!",
		zap.Int("transactions", len(snapshot.Transactions)),
		zap.String("remaining_balance", snapshot.RemainingBalance.StringFixed(2)),
	)
}
