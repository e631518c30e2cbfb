package dto

import (
	"github.com/finance-tracker/obligations/internal/application/usecase/budget"
	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Amount          MoneyResponse `json:"amount"`
	Category        string        `json:"category"`
	Period          string        `json:"period"`
	RolloverEnabled bool          `json:"rollover_enabled"`
	RolloverAmount  MoneyResponse `json:"rollover_amount"`
	AlertThreshold  float64       `json:"alert_threshold"`
	IsActive        bool          `json:"is_active"`
}

// BudgetSummaryResponse represents the spending summary of a budget for its current window.
type BudgetSummaryResponse struct {
	Budget           BudgetResponse    `json:"budget"`
	Window           WindowResponse    `json:"window"`
	Spent            MoneyResponse     `json:"spent"`
	Effective        MoneyResponse     `json:"effective"`
	Remaining        MoneyResponse     `json:"remaining"`
	PercentUsed      float64           `json:"percent_used"`
	Status           string            `json:"status"`
	Projected        MoneyResponse     `json:"projected"`
	DailyAllowance   MoneyResponse     `json:"daily_allowance"`
	DaysElapsed      int               `json:"days_elapsed"`
	DaysRemaining    int               `json:"days_remaining"`
	Progress         float64           `json:"progress"`
	TransactionCount int               `json:"transaction_count"`
	Warnings         []WarningResponse `json:"warnings"`
}

// BudgetSummaryListResponse represents the summaries of every active budget.
type BudgetSummaryListResponse struct {
	Summaries []BudgetSummaryResponse `json:"summaries"`
}

// RolloverResponse represents the result of carrying a budget's leftover forward.
type RolloverResponse struct {
	Budget         BudgetResponse    `json:"budget"`
	PreviousWindow WindowResponse    `json:"previous_window"`
	PreviousSpent  MoneyResponse     `json:"previous_spent"`
	Warnings       []WarningResponse `json:"warnings"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:              b.ID.String(),
		Name:            b.Name,
		Amount:          ToMoneyResponse(entity.NewMoney(b.Amount, b.Currency)),
		Category:        string(b.Category),
		Period:          string(b.Period),
		RolloverEnabled: b.RolloverEnabled,
		RolloverAmount:  ToMoneyResponse(entity.NewMoney(b.RolloverAmount, b.Currency)),
		AlertThreshold:  b.AlertThreshold,
		IsActive:        b.IsActive,
	}
}

// ToBudgetSummaryResponse converts a budget summary to its DTO.
func ToBudgetSummaryResponse(s *budget.Summary) BudgetSummaryResponse {
	return BudgetSummaryResponse{
		Budget:           ToBudgetResponse(&s.Budget),
		Window:           ToWindowResponse(s.Window, s.Label),
		Spent:            ToMoneyResponse(s.Spent),
		Effective:        ToMoneyResponse(s.Effective),
		Remaining:        ToMoneyResponse(s.Remaining),
		PercentUsed:      s.PercentUsed,
		Status:           string(s.Status),
		Projected:        ToMoneyResponse(s.Projected),
		DailyAllowance:   ToMoneyResponse(s.DailyAllowance),
		DaysElapsed:      s.DaysElapsed,
		DaysRemaining:    s.DaysRemaining,
		Progress:         s.Progress,
		TransactionCount: s.TransactionCount,
		Warnings:         ToWarningResponses(s.Warnings),
	}
}

// ToBudgetSummaryListResponse converts a list of budget summaries.
func ToBudgetSummaryListResponse(summaries []*budget.Summary) BudgetSummaryListResponse {
	response := BudgetSummaryListResponse{
		Summaries: make([]BudgetSummaryResponse, len(summaries)),
	}
	for i, s := range summaries {
		response.Summaries[i] = ToBudgetSummaryResponse(s)
	}
	return response
}

// ToRolloverResponse converts the output of a rollover.
func ToRolloverResponse(output *budget.ApplyRolloverOutput) RolloverResponse {
	return RolloverResponse{
		Budget:         ToBudgetResponse(output.Budget),
		PreviousWindow: ToWindowResponse(output.PreviousWindow, ""),
		PreviousSpent:  ToMoneyResponse(output.PreviousSpent),
		Warnings:       ToWarningResponses(output.Warnings),
	}
}
