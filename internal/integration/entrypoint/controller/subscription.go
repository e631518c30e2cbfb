// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/obligations/internal/application/usecase/billing"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/integration/entrypoint/dto"
)

// SubscriptionController handles subscription endpoints.
type SubscriptionController struct {
	overviewUseCase *billing.GetSubscriptionOverviewUseCase
	statusUseCase   *billing.GetSubscriptionStatusUseCase
	markPaidUseCase *billing.MarkSubscriptionPaidUseCase
	defaultCurrency entity.CurrencyCode
}

// NewSubscriptionController creates a new subscription controller instance.
// defaultCurrency is used for overview totals when the request names none.
func NewSubscriptionController(
	overviewUseCase *billing.GetSubscriptionOverviewUseCase,
	statusUseCase *billing.GetSubscriptionStatusUseCase,
	markPaidUseCase *billing.MarkSubscriptionPaidUseCase,
	defaultCurrency entity.CurrencyCode,
) *SubscriptionController {
	return &SubscriptionController{
		overviewUseCase: overviewUseCase,
		statusUseCase:   statusUseCase,
		markPaidUseCase: markPaidUseCase,
		defaultCurrency: defaultCurrency,
	}
}

// Overview handles GET /subscriptions/overview requests.
func (c *SubscriptionController) Overview(ctx *gin.Context) {
	currency := c.defaultCurrency
	if raw := ctx.Query("currency"); raw != "" {
		parsed, err := entity.ParseCurrencyCode(raw)
		if err != nil {
			handleError(ctx, err)
			return
		}
		currency = parsed
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), billing.GetSubscriptionOverviewInput{
		Currency: currency,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionOverviewResponse(output))
}

// Status handles GET /subscriptions/:id/status requests.
func (c *SubscriptionController) Status(ctx *gin.Context) {
	subscriptionID, ok := parseIDParam(ctx, "id", "subscription")
	if !ok {
		return
	}

	output, err := c.statusUseCase.Execute(ctx.Request.Context(), billing.GetSubscriptionStatusInput{
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSubscriptionStatusResponse(output))
}

// MarkPaid handles POST /subscriptions/:id/pay requests.
func (c *SubscriptionController) MarkPaid(ctx *gin.Context) {
	subscriptionID, ok := parseIDParam(ctx, "id", "subscription")
	if !ok {
		return
	}

	output, err := c.markPaidUseCase.Execute(ctx.Request.Context(), billing.MarkSubscriptionPaidInput{
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMarkPaidResponse(output))
}
