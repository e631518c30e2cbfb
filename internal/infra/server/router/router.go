// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/obligations/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/obligations/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	budgetController       *controller.BudgetController
	subscriptionController *controller.SubscriptionController
	utilityController      *controller.UtilityController
	rateController         *controller.RateController
	refreshRateLimiter     *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	budgetController *controller.BudgetController,
	subscriptionController *controller.SubscriptionController,
	utilityController *controller.UtilityController,
	rateController *controller.RateController,
	refreshRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:       healthController,
		budgetController:       budgetController,
		subscriptionController: subscriptionController,
		utilityController:      utilityController,
		rateController:         rateController,
		refreshRateLimiter:     refreshRateLimiter,
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

	// Setup routes
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
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Budget routes (only setup when persistence is available)
		if r.budgetController != nil {
			budgets := v1.Group("/budgets")
			{
				budgets.GET("/summaries", r.budgetController.ListSummaries)
				budgets.GET("/:id/summary", r.budgetController.Summary)
				budgets.POST("/:id/rollover", r.budgetController.Rollover)
			}
		}

		// Subscription routes
		if r.subscriptionController != nil {
			subscriptions := v1.Group("/subscriptions")
			{
				subscriptions.GET("/overview", r.subscriptionController.Overview)
				subscriptions.GET("/:id/status", r.subscriptionController.Status)
				subscriptions.POST("/:id/pay", r.subscriptionController.MarkPaid)
			}
		}

		// Utility ledger routes
		if r.utilityController != nil {
			utilities := v1.Group("/utilities/:id")
			{
				utilities.POST("/payments", r.utilityController.RecordPayment)
				utilities.DELETE("/payments/:paymentId", r.utilityController.RemovePayment)
				utilities.POST("/readings", r.utilityController.RecordReading)
				utilities.GET("/readings/:readingId/consumption", r.utilityController.Consumption)
			}
		}

		// Exchange rate routes (work without persistence)
		if r.rateController != nil {
			rates := v1.Group("/rates")
			{
				rates.GET("/convert", r.rateController.Convert)
				rates.GET("/:base", r.rateController.Get)
				if r.refreshRateLimiter != nil {
					rates.POST("/:base/refresh", r.refreshRateLimiter.Middleware(), r.rateController.Refresh)
				} else {
					rates.POST("/:base/refresh", r.rateController.Refresh)
				}
			}
		}
	}
}
