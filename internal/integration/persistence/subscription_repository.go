// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/obligations/internal/application/adapter"
	"github.com/finance-tracker/obligations/internal/domain/entity"
	domainerror "github.com/finance-tracker/obligations/internal/domain/error"
	"github.com/finance-tracker/obligations/internal/integration/persistence/model"
)

// subscriptionRepository implements the adapter.SubscriptionRepository interface.
// Payments live in subscription_payments keyed by subscription_id.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance.
func NewSubscriptionRepository(db *gorm.DB) adapter.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create creates a new subscription and its payments.
func (r *subscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	subModel, payments := model.SubscriptionFromEntity(sub)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(subModel).Error; err != nil {
			return err
		}
		if len(payments) == 0 {
			return nil
		}
		return tx.Create(&payments).Error
	})
}

// FindByID retrieves a subscription and its payment history.
func (r *subscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	var subModel model.SubscriptionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&subModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSubscriptionNotFound
		}
		return nil, result.Error
	}

	var payments []model.SubscriptionPaymentModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ?", id).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}

	return subModel.ToEntity(payments), nil
}

// FindAll retrieves every subscription ordered by next due date, with payments.
func (r *subscriptionRepository) FindAll(ctx context.Context) ([]*entity.Subscription, error) {
	var subModels []model.SubscriptionModel
	if err := r.db.WithContext(ctx).Order("next_due_date ASC").Find(&subModels).Error; err != nil {
		return nil, err
	}
	if len(subModels) == 0 {
		return []*entity.Subscription{}, nil
	}

	ids := make([]uuid.UUID, len(subModels))
	for i, m := range subModels {
		ids[i] = m.ID
	}

	var payments []model.SubscriptionPaymentModel
	if err := r.db.WithContext(ctx).
		Where("subscription_id IN ?", ids).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}

	bySubscription := make(map[uuid.UUID][]model.SubscriptionPaymentModel, len(subModels))
	for _, p := range payments {
		bySubscription[p.SubscriptionID] = append(bySubscription[p.SubscriptionID], p)
	}

	subs := make([]*entity.Subscription, len(subModels))
	for i := range subModels {
		subs[i] = subModels[i].ToEntity(bySubscription[subModels[i].ID])
	}
	return subs, nil
}

// Save updates the subscription fields and inserts payments not yet stored.
// Stored payments are never rewritten.
func (r *subscriptionRepository) Save(ctx context.Context, sub *entity.Subscription) error {
	subModel, payments := model.SubscriptionFromEntity(sub)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.SubscriptionModel{}).Where("id = ?", sub.ID).Select("*").Updates(subModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrSubscriptionNotFound
		}

		if len(payments) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&payments).Error
	})
}
