// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/worldbooks/backend/internal/integration/entrypoint/controller"
	"github.com/worldbooks/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	transactionController *controller.TransactionController
	invoiceController     *controller.InvoiceController
	dashboardController   *controller.DashboardController
	ledgerController      *controller.LedgerController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	invoiceController *controller.InvoiceController,
	dashboardController *controller.DashboardController,
	ledgerController *controller.LedgerController,
) *Router {
	return &Router{
		healthController:      healthController,
		transactionController: transactionController,
		invoiceController:     invoiceController,
		dashboardController:   dashboardController,
		ledgerController:      ledgerController,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			// /recent must be registered before /:id so gin does not
			// treat it as an id.
			transactions.GET("/recent", r.transactionController.Recent)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.PATCH("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.GET("", r.invoiceController.List)
			invoices.POST("", r.invoiceController.Create)
			invoices.GET("/recent", r.invoiceController.Recent)
			invoices.GET("/:id", r.invoiceController.Get)
			invoices.PATCH("/:id", r.invoiceController.Update)
			invoices.DELETE("/:id", r.invoiceController.Delete)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/kpis", r.dashboardController.KPIs)
		}

		ledger := v1.Group("/ledger")
		{
			ledger.GET("/revision", r.ledgerController.Revision)
		}

		// Seeding rewrites the ledger, so throttle repeated calls.
		seedLimiter := middleware.NewRateLimiter()
		v1.POST("/seed", seedLimiter.Middleware(), r.ledgerController.Seed)
	}
}
