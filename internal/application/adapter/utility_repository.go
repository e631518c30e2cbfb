// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// UtilityAccountRepository defines the interface for utility account persistence operations.
// Payments and meter readings are stored in their own tables keyed by account ID.
type UtilityAccountRepository interface {
	// Create creates a new utility account with its history.
	Create(ctx context.Context, account *entity.UtilityAccount) error

	// FindByID retrieves an account with its payments and readings.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UtilityAccount, error)

	// Save updates the account fields and synchronizes its payments and readings.
	Save(ctx context.Context, account *entity.UtilityAccount) error
}
