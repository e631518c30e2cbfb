// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/obligations/internal/application/usecase/budget"
	"github.com/finance-tracker/obligations/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	summaryUseCase  *budget.GetBudgetSummaryUseCase
	listUseCase     *budget.ListBudgetSummariesUseCase
	rolloverUseCase *budget.ApplyRolloverUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	summaryUseCase *budget.GetBudgetSummaryUseCase,
	listUseCase *budget.ListBudgetSummariesUseCase,
	rolloverUseCase *budget.ApplyRolloverUseCase,
) *BudgetController {
	return &BudgetController{
		summaryUseCase:  summaryUseCase,
		listUseCase:     listUseCase,
		rolloverUseCase: rolloverUseCase,
	}
}

// Summary handles GET /budgets/:id/summary requests.
func (c *BudgetController) Summary(ctx *gin.Context) {
	budgetID, ok := parseIDParam(ctx, "id", "budget")
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), budget.GetBudgetSummaryInput{
		BudgetID: budgetID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetSummaryResponse(output.Summary))
}

// ListSummaries handles GET /budgets/summaries requests.
func (c *BudgetController) ListSummaries(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetSummaryListResponse(output.Summaries))
}

// Rollover handles POST /budgets/:id/rollover requests.
func (c *BudgetController) Rollover(ctx *gin.Context) {
	budgetID, ok := parseIDParam(ctx, "id", "budget")
	if !ok {
		return
	}

	output, err := c.rolloverUseCase.Execute(ctx.Request.Context(), budget.ApplyRolloverInput{
		BudgetID: budgetID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRolloverResponse(output))
}
