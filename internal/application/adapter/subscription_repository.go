// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription persistence operations.
// Payment history is stored in its own table keyed by subscription ID.
type SubscriptionRepository interface {
	// Create creates a new subscription with its payments.
	Create(ctx context.Context, sub *entity.Subscription) error

	// FindByID retrieves a subscription and its payment history.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)

	// FindAll retrieves all subscriptions with their payment history.
	FindAll(ctx context.Context) ([]*entity.Subscription, error)

	// Save updates the subscription fields and inserts payments not yet stored.
	Save(ctx context.Context, sub *entity.Subscription) error
}
