// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/worldbooks/backend/config"
	"github.com/worldbooks/backend/internal/application/adapter"
	"github.com/worldbooks/backend/internal/application/usecase/currency"
	"github.com/worldbooks/backend/internal/application/usecase/dashboard"
	"github.com/worldbooks/backend/internal/application/usecase/invoice"
	"github.com/worldbooks/backend/internal/application/usecase/seed"
	"github.com/worldbooks/backend/internal/application/usecase/transaction"
	infradb "github.com/worldbooks/backend/internal/infra/db"
	"github.com/worldbooks/backend/internal/infra/server/router"
	"github.com/worldbooks/backend/internal/integration/adapters"
	"github.com/worldbooks/backend/internal/integration/entrypoint/controller"
	"github.com/worldbooks/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *infradb.Database) *Injector {
	db := database.DB()

	// Create repositories sharing one revision counter
	revision := persistence.NewRevision()
	transactionRepo := persistence.NewTransactionRepository(db, revision)
	invoiceRepo := persistence.NewInvoiceRepository(db, revision)

	// Create the rate source and normalizer
	rateSource := newRateSource(cfg)
	normalizer := currency.NewNormalizer(rateSource, cfg.Rates.LookupTimeout)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	recentTransactionsUseCase := transaction.NewRecentTransactionsUseCase(transactionRepo)

	// Create invoice use cases
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(invoiceRepo)
	createInvoiceUseCase := invoice.NewCreateInvoiceUseCase(invoiceRepo)
	getInvoiceUseCase := invoice.NewGetInvoiceUseCase(invoiceRepo)
	updateInvoiceUseCase := invoice.NewUpdateInvoiceUseCase(invoiceRepo)
	deleteInvoiceUseCase := invoice.NewDeleteInvoiceUseCase(invoiceRepo)
	recentInvoicesUseCase := invoice.NewRecentInvoicesUseCase(invoiceRepo)

	// Create dashboard and seeding use cases
	kpisUseCase := dashboard.NewGetDashboardKPIsUseCase(transactionRepo, invoiceRepo, normalizer)
	seedUseCase := seed.NewSeedSampleDataUseCase(transactionRepo, invoiceRepo)

	// Create controllers
	healthController := controller.NewHealthController(database, revision)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		getTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		recentTransactionsUseCase,
	)

	invoiceController := controller.NewInvoiceController(
		listInvoicesUseCase,
		createInvoiceUseCase,
		getInvoiceUseCase,
		updateInvoiceUseCase,
		deleteInvoiceUseCase,
		recentInvoicesUseCase,
	)

	dashboardController := controller.NewDashboardController(kpisUseCase)
	ledgerController := controller.NewLedgerController(revision, seedUseCase, cfg.Seed.Enabled)

	// Create router
	appRouter := router.NewRouter(
		healthController,
		transactionController,
		invoiceController,
		dashboardController,
		ledgerController,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: appRouter,
	}
}

// newRateSource selects the rate source implementation. The static source
// ships a small USD-pivot table so development setups without a rate feed
// can still aggregate the common currencies.
func newRateSource(cfg *config.Config) adapter.RateSource {
	if cfg.Rates.Source == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		slog.Info("Using redis rate source", "addr", cfg.Redis.Addr)
		return adapters.NewRedisRateSource(client)
	}

	source := adapters.NewStaticRateSource()
	for pair, rate := range map[[2]string]string{
		{"EUR", "USD"}: "1.10",
		{"USD", "EUR"}: "0.91",
		{"GBP", "USD"}: "1.27",
		{"USD", "GBP"}: "0.79",
	} {
		source.SetRate(pair[0], pair[1], decimal.RequireFromString(rate))
	}
	slog.Info("Using static rate source")
	return source
}
