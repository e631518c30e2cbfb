// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/integration/entrypoint/dto"
)

// RateController handles exchange-rate endpoints.
type RateController struct {
	getRatesUseCase *rate.GetRatesUseCase
	convertUseCase  *rate.ConvertAmountUseCase
}

// NewRateController creates a new rate controller instance.
func NewRateController(getRatesUseCase *rate.GetRatesUseCase, convertUseCase *rate.ConvertAmountUseCase) *RateController {
	return &RateController{
		getRatesUseCase: getRatesUseCase,
		convertUseCase:  convertUseCase,
	}
}

// Get handles GET /rates/:base requests.
func (c *RateController) Get(ctx *gin.Context) {
	c.rates(ctx, false)
}

// Refresh handles POST /rates/:base/refresh requests.
func (c *RateController) Refresh(ctx *gin.Context) {
	c.rates(ctx, true)
}

func (c *RateController) rates(ctx *gin.Context, refresh bool) {
	base, err := entity.ParseCurrencyCode(ctx.Param("base"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.getRatesUseCase.Execute(ctx.Request.Context(), rate.GetRatesInput{
		Base:    base,
		Refresh: refresh,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRatesResponse(output))
}

// Convert handles GET /rates/convert?amount=&from=&to= requests.
func (c *RateController) Convert(ctx *gin.Context) {
	amount, err := decimal.NewFromString(ctx.Query("amount"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid amount",
			Code:    string(domainerror.ErrCodeInvalidAmount),
			Details: err.Error(),
		})
		return
	}

	from, err := entity.ParseCurrencyCode(ctx.Query("from"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	to, err := entity.ParseCurrencyCode(ctx.Query("to"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.convertUseCase.Execute(ctx.Request.Context(), rate.ConvertAmountInput{
		Amount: amount,
		From:   from,
		To:     to,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToConvertResponse(output))
}
