// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/integration/entrypoint/dto"
)

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrBudgetNotFound),
		errors.Is(err, domainerror.ErrSubscriptionNotFound),
		errors.Is(err, domainerror.ErrUtilityAccountNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(getStatusCodeForLedgerError(ledgerErr.Code), dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	var billingErr *domainerror.BillingError
	if errors.As(err, &billingErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: billingErr.Message,
			Code:  string(billingErr.Code),
		})
		return
	}

	var periodErr *domainerror.PeriodError
	if errors.As(err, &periodErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: periodErr.Message,
			Code:  string(periodErr.Code),
		})
		return
	}

	var rateErr *domainerror.RateError
	if errors.As(err, &rateErr) {
		ctx.JSON(getStatusCodeForRateError(rateErr.Code), dto.ErrorResponse{
			Error: rateErr.Message,
			Code:  string(rateErr.Code),
		})
		return
	}

	slog.Error("Unhandled request error", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
	})
}

func getStatusCodeForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodePaymentNotFound, domainerror.ErrCodeReadingNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNegativeAmount, domainerror.ErrCodeNegativeReading, domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForRateError(code domainerror.RateErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidCurrency, domainerror.ErrCodeInvalidAmount:
		return http.StatusBadRequest
	case domainerror.ErrCodeMissingRate:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeNetworkFailure:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeInvalidRatePayload:
		return http.StatusBadGateway
	case domainerror.ErrCodeRefreshThrottled:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// parseIDParam parses a UUID path parameter, writing a 400 response when it is malformed.
func parseIDParam(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + label + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
