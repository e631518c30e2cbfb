// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/usecase/utility"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/integration/entrypoint/dto"
)

// UtilityController handles utility ledger endpoints.
type UtilityController struct {
	recordPaymentUseCase *utility.RecordUtilityPaymentUseCase
	removePaymentUseCase *utility.RemoveUtilityPaymentUseCase
	recordReadingUseCase *utility.RecordMeterReadingUseCase
	consumptionUseCase   *utility.GetConsumptionUseCase
}

// NewUtilityController creates a new utility controller instance.
func NewUtilityController(
	recordPaymentUseCase *utility.RecordUtilityPaymentUseCase,
	removePaymentUseCase *utility.RemoveUtilityPaymentUseCase,
	recordReadingUseCase *utility.RecordMeterReadingUseCase,
	consumptionUseCase *utility.GetConsumptionUseCase,
) *UtilityController {
	return &UtilityController{
		recordPaymentUseCase: recordPaymentUseCase,
		removePaymentUseCase: removePaymentUseCase,
		recordReadingUseCase: recordReadingUseCase,
		consumptionUseCase:   consumptionUseCase,
	}
}

// RecordPayment handles POST /utilities/:id/payments requests.
func (c *UtilityController) RecordPayment(ctx *gin.Context) {
	accountID, ok := parseIDParam(ctx, "id", "utility account")
	if !ok {
		return
	}

	var req dto.RecordUtilityPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	amount, ok := parseDecimalField(ctx, req.Amount, "amount")
	if !ok {
		return
	}

	output, err := c.recordPaymentUseCase.Execute(ctx.Request.Context(), utility.RecordUtilityPaymentInput{
		AccountID: accountID,
		Amount:    amount,
		PaidAt:    req.PaidAt,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecordUtilityPaymentResponse(output))
}

// RemovePayment handles DELETE /utilities/:id/payments/:paymentId requests.
func (c *UtilityController) RemovePayment(ctx *gin.Context) {
	accountID, ok := parseIDParam(ctx, "id", "utility account")
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(ctx, "paymentId", "payment")
	if !ok {
		return
	}

	output, err := c.removePaymentUseCase.Execute(ctx.Request.Context(), utility.RemoveUtilityPaymentInput{
		AccountID: accountID,
		PaymentID: paymentID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUtilityAccountResponse(output.Account))
}

// RecordReading handles POST /utilities/:id/readings requests.
func (c *UtilityController) RecordReading(ctx *gin.Context) {
	accountID, ok := parseIDParam(ctx, "id", "utility account")
	if !ok {
		return
	}

	var req dto.RecordMeterReadingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	value, ok := parseDecimalField(ctx, req.Value, "value")
	if !ok {
		return
	}

	output, err := c.recordReadingUseCase.Execute(ctx.Request.Context(), utility.RecordMeterReadingInput{
		AccountID: accountID,
		Value:     value,
		ReadAt:    req.ReadAt,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecordMeterReadingResponse(output))
}

// Consumption handles GET /utilities/:id/readings/:readingId/consumption requests.
func (c *UtilityController) Consumption(ctx *gin.Context) {
	accountID, ok := parseIDParam(ctx, "id", "utility account")
	if !ok {
		return
	}
	readingID, ok := parseIDParam(ctx, "readingId", "reading")
	if !ok {
		return
	}

	output, err := c.consumptionUseCase.Execute(ctx.Request.Context(), utility.GetConsumptionInput{
		AccountID: accountID,
		ReadingID: readingID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToConsumptionResponse(output))
}

func parseDecimalField(ctx *gin.Context, raw, field string) (decimal.Decimal, bool) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid " + field,
			Code:    string(domainerror.ErrCodeMissingFields),
			Details: err.Error(),
		})
		return decimal.Decimal{}, false
	}
	return value, true
}
