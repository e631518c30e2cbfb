package dto

import (
	"time"

	"github.com/finance-tracker/obligations/internal/application/usecase/billing"
	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// SubscriptionResponse represents a subscription in API responses.
type SubscriptionResponse struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Price              MoneyResponse `json:"price"`
	Category           string        `json:"category"`
	Cycle              string        `json:"cycle"`
	StartDate          time.Time     `json:"start_date"`
	NextDueDate        time.Time     `json:"next_due_date"`
	ReminderDaysBefore int           `json:"reminder_days_before"`
	IsActive           bool          `json:"is_active"`
	IsPaused           bool          `json:"is_paused"`
	TrialEndDate       *time.Time    `json:"trial_end_date,omitempty"`
}

// SubscriptionPaymentResponse represents a recorded subscription payment.
type SubscriptionPaymentResponse struct {
	ID      string        `json:"id"`
	Amount  MoneyResponse `json:"amount"`
	PaidAt  time.Time     `json:"paid_at"`
	DueDate time.Time     `json:"due_date"`
}

// SubscriptionViewResponse represents a subscription with its derived status.
type SubscriptionViewResponse struct {
	Subscription      SubscriptionResponse `json:"subscription"`
	Status            string               `json:"status"`
	DaysUntilDue      int                  `json:"days_until_due"`
	MonthlyEquivalent MoneyResponse        `json:"monthly_equivalent"`
}

// UpcomingRenewalResponse represents a renewal falling inside the upcoming horizon.
type UpcomingRenewalResponse struct {
	SubscriptionID string        `json:"subscription_id"`
	Name           string        `json:"name"`
	DueDate        time.Time     `json:"due_date"`
	DaysUntilDue   int           `json:"days_until_due"`
	Amount         MoneyResponse `json:"amount"`
}

// SubscriptionOverviewResponse represents the response for the subscription overview.
type SubscriptionOverviewResponse struct {
	Subscriptions []SubscriptionViewResponse `json:"subscriptions"`
	MonthlyTotal  MoneyResponse              `json:"monthly_total"`
	YearlyTotal   MoneyResponse              `json:"yearly_total"`
	ActiveCount   int                        `json:"active_count"`
	Upcoming      []UpcomingRenewalResponse  `json:"upcoming"`
	Warnings      []WarningResponse          `json:"warnings"`
}

// SubscriptionStatusResponse represents the response for a single subscription's status.
type SubscriptionStatusResponse struct {
	Subscription      SubscriptionResponse `json:"subscription"`
	Status            string               `json:"status"`
	DaysUntilDue      int                  `json:"days_until_due"`
	MonthlyEquivalent MoneyResponse        `json:"monthly_equivalent"`
	YearlyEquivalent  MoneyResponse        `json:"yearly_equivalent"`
	UpcomingDueDates  []time.Time          `json:"upcoming_due_dates"`
	TotalPaid         MoneyResponse        `json:"total_paid"`
}

// MarkPaidResponse represents the response after marking a subscription as paid.
type MarkPaidResponse struct {
	Subscription SubscriptionResponse        `json:"subscription"`
	Payment      SubscriptionPaymentResponse `json:"payment"`
	Status       string                      `json:"status"`
}

// ToSubscriptionResponse converts a domain Subscription entity to a SubscriptionResponse DTO.
func ToSubscriptionResponse(s *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                 s.ID.String(),
		Name:               s.Name,
		Price:              ToMoneyResponse(s.Price()),
		Category:           string(s.Category),
		Cycle:              s.Cycle.String(),
		StartDate:          s.StartDate,
		NextDueDate:        s.NextDueDate,
		ReminderDaysBefore: s.ReminderDaysBefore,
		IsActive:           s.IsActive,
		IsPaused:           s.IsPaused,
		TrialEndDate:       s.TrialEndDate,
	}
}

// ToSubscriptionOverviewResponse converts the subscription overview output.
func ToSubscriptionOverviewResponse(output *billing.GetSubscriptionOverviewOutput) SubscriptionOverviewResponse {
	response := SubscriptionOverviewResponse{
		Subscriptions: make([]SubscriptionViewResponse, len(output.Subscriptions)),
		MonthlyTotal:  ToMoneyResponse(output.MonthlyTotal),
		YearlyTotal:   ToMoneyResponse(output.YearlyTotal),
		ActiveCount:   output.ActiveCount,
		Upcoming:      make([]UpcomingRenewalResponse, len(output.Upcoming)),
		Warnings:      ToWarningResponses(output.Warnings),
	}

	for i, view := range output.Subscriptions {
		response.Subscriptions[i] = SubscriptionViewResponse{
			Subscription:      ToSubscriptionResponse(view.Subscription),
			Status:            string(view.Status),
			DaysUntilDue:      view.DaysUntilDue,
			MonthlyEquivalent: ToMoneyResponse(view.MonthlyEquivalent),
		}
	}
	for i, renewal := range output.Upcoming {
		response.Upcoming[i] = UpcomingRenewalResponse{
			SubscriptionID: renewal.SubscriptionID.String(),
			Name:           renewal.Name,
			DueDate:        renewal.DueDate,
			DaysUntilDue:   renewal.DaysUntilDue,
			Amount:         ToMoneyResponse(renewal.Amount),
		}
	}

	return response
}

// ToSubscriptionStatusResponse converts the subscription status output.
func ToSubscriptionStatusResponse(output *billing.GetSubscriptionStatusOutput) SubscriptionStatusResponse {
	dates := output.UpcomingDueDates
	if dates == nil {
		dates = []time.Time{}
	}

	return SubscriptionStatusResponse{
		Subscription:      ToSubscriptionResponse(output.Subscription),
		Status:            string(output.Status),
		DaysUntilDue:      output.DaysUntilDue,
		MonthlyEquivalent: ToMoneyResponse(output.MonthlyEquivalent),
		YearlyEquivalent:  ToMoneyResponse(output.YearlyEquivalent),
		UpcomingDueDates:  dates,
		TotalPaid:         ToMoneyResponse(output.TotalPaid),
	}
}

// ToMarkPaidResponse converts the output of marking a subscription as paid.
func ToMarkPaidResponse(output *billing.MarkSubscriptionPaidOutput) MarkPaidResponse {
	return MarkPaidResponse{
		Subscription: ToSubscriptionResponse(output.Subscription),
		Payment: SubscriptionPaymentResponse{
			ID:      output.Payment.ID.String(),
			Amount:  ToMoneyResponse(entity.NewMoney(output.Payment.Amount, output.Payment.Currency)),
			PaidAt:  output.Payment.PaidAt,
			DueDate: output.Payment.DueDate,
		},
		Status: string(output.Status),
	}
}
