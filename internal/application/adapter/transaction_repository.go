// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/obligations/internal/domain/entity"
)

// TransactionFilters holds filter options for listing transactions.
type TransactionFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  *entity.Category
	Type      *entity.TransactionType
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByFilters retrieves transactions matching the filters, ordered by date.
	FindByFilters(ctx context.Context, filters TransactionFilters) ([]*entity.Transaction, error)
}
