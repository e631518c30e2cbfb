package billing

import (
	"testing"
	"time"

	"github.com/finance-tracker/obligations/internal/domain/entity"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 20)
	past := now.AddDate(0, 0, -2)

	base := func() entity.Subscription {
		return entity.Subscription{
			Cycle:              entity.Monthly,
			NextDueDate:        future,
			ReminderDaysBefore: 3,
			IsActive:           true,
		}
	}

	tests := []struct {
		name   string
		modify func(s *entity.Subscription)
		want   entity.SubscriptionStatus
	}{
		{
			name:   "active",
			modify: func(s *entity.Subscription) {},
			want:   entity.SubscriptionStatusActive,
		},
		{
			name: "paused wins over everything",
			modify: func(s *entity.Subscription) {
				s.IsPaused = true
				s.IsActive = false
				s.NextDueDate = past
			},
			want: entity.SubscriptionStatusPaused,
		},
		{
			name: "cancelled when inactive",
			modify: func(s *entity.Subscription) {
				s.IsActive = false
				s.NextDueDate = past
			},
			want: entity.SubscriptionStatusCancelled,
		},
		{
			name: "trial before trial end",
			modify: func(s *entity.Subscription) {
				trialEnd := now.Add(time.Hour)
				s.TrialEndDate = &trialEnd
				s.NextDueDate = past
			},
			want: entity.SubscriptionStatusTrial,
		},
		{
			name: "trial ended falls through",
			modify: func(s *entity.Subscription) {
				trialEnd := now.Add(-time.Hour)
				s.TrialEndDate = &trialEnd
			},
			want: entity.SubscriptionStatusActive,
		},
		{
			name: "overdue before start of today",
			modify: func(s *entity.Subscription) {
				s.NextDueDate = time.Date(2025, time.March, 9, 23, 59, 0, 0, time.UTC)
			},
			want: entity.SubscriptionStatusOverdue,
		},
		{
			name: "due today earlier in the day",
			modify: func(s *entity.Subscription) {
				s.NextDueDate = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
			},
			want: entity.SubscriptionStatusDueToday,
		},
		{
			name: "due today later in the day",
			modify: func(s *entity.Subscription) {
				s.NextDueDate = time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC)
			},
			want: entity.SubscriptionStatusDueToday,
		},
		{
			name: "due soon within reminder lead",
			modify: func(s *entity.Subscription) {
				s.NextDueDate = time.Date(2025, time.March, 13, 8, 0, 0, 0, time.UTC)
			},
			want: entity.SubscriptionStatusDueSoon,
		},
		{
			name: "active just outside reminder lead",
			modify: func(s *entity.Subscription) {
				s.NextDueDate = time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)
			},
			want: entity.SubscriptionStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := base()
			tt.modify(&sub)
			if got := DeriveStatus(sub, now); got != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDeriveStatus_UsesLocationOfNow(t *testing.T) {
	plus4 := time.FixedZone("UTC+4", 4*60*60)
	sub := entity.Subscription{
		Cycle:       entity.Monthly,
		IsActive:    true,
		NextDueDate: time.Date(2025, time.March, 10, 21, 0, 0, 0, time.UTC), // Mar 11 01:00 in UTC+4
	}
	now := time.Date(2025, time.March, 11, 9, 0, 0, 0, plus4)

	if got := DeriveStatus(sub, now); got != entity.SubscriptionStatusDueToday {
		t.Errorf("expected due_today in UTC+4, got %s", got)
	}
	if got := DeriveStatus(sub, now.In(time.UTC)); got != entity.SubscriptionStatusOverdue {
		t.Errorf("expected overdue in UTC, got %s", got)
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC)
	sub := entity.Subscription{NextDueDate: time.Date(2025, time.March, 12, 1, 0, 0, 0, time.UTC)}

	if got := DaysUntilDue(sub, now); got != 2 {
		t.Errorf("expected 2 days, got %d", got)
	}

	sub.NextDueDate = time.Date(2025, time.March, 7, 1, 0, 0, 0, time.UTC)
	if got := DaysUntilDue(sub, now); got != -3 {
		t.Errorf("expected -3 days, got %d", got)
	}
}
