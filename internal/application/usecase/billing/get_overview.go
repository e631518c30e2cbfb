// Package billing advances subscription billing cycles and derives their status.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/application/usecase/rate"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	"github.com/finance-tracker/obligations/internal/domain/valueobject"
)

// DefaultUpcomingDays is the renewal horizon used when none is configured.
const DefaultUpcomingDays = 7

// GetSubscriptionOverviewInput represents the input for the subscription overview.
type GetSubscriptionOverviewInput struct {
	Currency entity.CurrencyCode // Display currency for the totals
}

// SubscriptionView is one subscription with its derived figures.
type SubscriptionView struct {
	Subscription      *entity.Subscription
	Status            entity.SubscriptionStatus
	DaysUntilDue      int
	MonthlyEquivalent entity.Money // In the subscription's own currency
}

// UpcomingRenewal is a payment falling due within the horizon.
type UpcomingRenewal struct {
	SubscriptionID uuid.UUID
	Name           string
	DueDate        time.Time
	DaysUntilDue   int
	Amount         entity.Money
}

// GetSubscriptionOverviewOutput represents the output of the subscription overview.
type GetSubscriptionOverviewOutput struct {
	Subscriptions []SubscriptionView
	MonthlyTotal  entity.Money
	YearlyTotal   entity.Money
	ActiveCount   int
	Upcoming      []UpcomingRenewal
	Warnings      []valueobject.Warning
}

// GetSubscriptionOverviewUseCase summarizes every subscription and what they cost together.
type GetSubscriptionOverviewUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	rates            *rate.Cache
	clock            adapter.Clock
	calendar         valueobject.Calendar
	rateBase         entity.CurrencyCode
	upcomingDays     int
}

// NewGetSubscriptionOverviewUseCase creates a new GetSubscriptionOverviewUseCase instance.
func NewGetSubscriptionOverviewUseCase(
	subscriptionRepo adapter.SubscriptionRepository,
	rates *rate.Cache,
	clock adapter.Clock,
	calendar valueobject.Calendar,
	rateBase entity.CurrencyCode,
	upcomingDays int,
) *GetSubscriptionOverviewUseCase {
	if upcomingDays <= 0 {
		upcomingDays = DefaultUpcomingDays
	}
	return &GetSubscriptionOverviewUseCase{
		subscriptionRepo: subscriptionRepo,
		rates:            rates,
		clock:            clock,
		calendar:         calendar,
		rateBase:         rateBase,
		upcomingDays:     upcomingDays,
	}
}

// Execute builds the overview.
func (uc *GetSubscriptionOverviewUseCase) Execute(ctx context.Context, input GetSubscriptionOverviewInput) (*GetSubscriptionOverviewOutput, error) {
	subs, err := uc.subscriptionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find subscriptions: %w", err)
	}

	display := input.Currency
	if display == "" {
		display = uc.rateBase
	}
	now := uc.calendar.In(uc.clock.Now())

	output := &GetSubscriptionOverviewOutput{
		Subscriptions: make([]SubscriptionView, 0, len(subs)),
		MonthlyTotal:  entity.Zero(display),
		YearlyTotal:   entity.Zero(display),
	}

	var quote *rate.Quote
	quoteLoaded := false

	for _, sub := range subs {
		monthly, err := MonthlyEquivalent(sub.Amount, sub.Cycle)
		if err != nil {
			return nil, err
		}
		status := DeriveStatus(*sub, now)
		days := DaysUntilDue(*sub, now)

		output.Subscriptions = append(output.Subscriptions, SubscriptionView{
			Subscription:      sub,
			Status:            status,
			DaysUntilDue:      days,
			MonthlyEquivalent: entity.NewMoney(monthly, sub.Currency),
		})

		if !countsTowardTotals(status) {
			continue
		}
		output.ActiveCount++

		if sub.Currency != display && !quoteLoaded {
			quote = uc.quote(ctx, now)
			quoteLoaded = true
		}
		converted := uc.toDisplay(output, monthly, sub.Currency, display, quote)
		output.MonthlyTotal.Amount = output.MonthlyTotal.Amount.Add(converted)

		if days <= uc.upcomingDays {
			output.Upcoming = append(output.Upcoming, UpcomingRenewal{
				SubscriptionID: sub.ID,
				Name:           sub.Name,
				DueDate:        sub.NextDueDate,
				DaysUntilDue:   days,
				Amount:         sub.Price(),
			})
		}
	}

	output.YearlyTotal.Amount = output.MonthlyTotal.Amount.Mul(monthsPerYear)
	sort.SliceStable(output.Upcoming, func(i, j int) bool {
		return output.Upcoming[i].DueDate.Before(output.Upcoming[j].DueDate)
	})

	return output, nil
}

// Paused, cancelled and trial subscriptions are not being paid for.
func countsTowardTotals(status entity.SubscriptionStatus) bool {
	switch status {
	case entity.SubscriptionStatusPaused, entity.SubscriptionStatusCancelled, entity.SubscriptionStatusTrial:
		return false
	default:
		return true
	}
}

func (uc *GetSubscriptionOverviewUseCase) quote(ctx context.Context, now time.Time) *rate.Quote {
	if uc.rates == nil {
		return nil
	}
	quote, err := uc.rates.Get(ctx, uc.rateBase, now)
	if err != nil {
		slog.Warn("Subscription totals left unconverted, exchange rates unavailable",
			"base", uc.rateBase,
			"error", err,
		)
		return nil
	}
	return quote
}

func (uc *GetSubscriptionOverviewUseCase) toDisplay(
	output *GetSubscriptionOverviewOutput,
	amount decimal.Decimal,
	from, to entity.CurrencyCode,
	quote *rate.Quote,
) decimal.Decimal {
	if from == to {
		return amount
	}
	if quote == nil {
		output.Warnings = valueobject.AppendUnique(output.Warnings, valueobject.NewMissingRateWarning(from))
		return amount
	}

	converted, err := rate.Convert(amount, from, to, quote.Snapshot)
	if err != nil {
		output.Warnings = valueobject.AppendUnique(output.Warnings, valueobject.NewMissingRateWarning(from))
		return amount
	}
	for _, w := range quote.Warnings {
		output.Warnings = valueobject.AppendUnique(output.Warnings, w)
	}
	return converted
}
