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

// utilityAccountRepository implements the adapter.UtilityAccountRepository interface.
// Payments and readings live in utility_payments and meter_readings keyed by account_id.
type utilityAccountRepository struct {
	db *gorm.DB
}

// NewUtilityAccountRepository creates a new utility account repository instance.
func NewUtilityAccountRepository(db *gorm.DB) adapter.UtilityAccountRepository {
	return &utilityAccountRepository{
		db: db,
	}
}

// Create creates a new utility account with its history.
func (r *utilityAccountRepository) Create(ctx context.Context, account *entity.UtilityAccount) error {
	accountModel, payments, readings := model.UtilityAccountFromEntity(account)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(accountModel).Error; err != nil {
			return err
		}
		if len(payments) > 0 {
			if err := tx.Create(&payments).Error; err != nil {
				return err
			}
		}
		if len(readings) > 0 {
			if err := tx.Create(&readings).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves an account with its payments and readings.
func (r *utilityAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UtilityAccount, error) {
	var accountModel model.UtilityAccountModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUtilityAccountNotFound
		}
		return nil, result.Error
	}

	var payments []model.UtilityPaymentModel
	if err := r.db.WithContext(ctx).Where("account_id = ?", id).Order("paid_at ASC").Find(&payments).Error; err != nil {
		return nil, err
	}

	var readings []model.MeterReadingModel
	if err := r.db.WithContext(ctx).Where("account_id = ?", id).Order("read_at ASC").Find(&readings).Error; err != nil {
		return nil, err
	}

	return accountModel.ToEntity(payments, readings), nil
}

// Save updates the account fields and makes the stored payments and readings
// match the account: rows missing from it are deleted and new ones inserted.
func (r *utilityAccountRepository) Save(ctx context.Context, account *entity.UtilityAccount) error {
	accountModel, payments, readings := model.UtilityAccountFromEntity(account)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.UtilityAccountModel{}).Where("id = ?", account.ID).Select("*").Updates(accountModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrUtilityAccountNotFound
		}

		paymentIDs := make([]uuid.UUID, len(payments))
		for i, p := range payments {
			paymentIDs[i] = p.ID
		}
		if err := syncChildren(tx, &model.UtilityPaymentModel{}, account.ID, paymentIDs); err != nil {
			return err
		}
		if len(payments) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&payments).Error; err != nil {
				return err
			}
		}

		readingIDs := make([]uuid.UUID, len(readings))
		for i, rd := range readings {
			readingIDs[i] = rd.ID
		}
		if err := syncChildren(tx, &model.MeterReadingModel{}, account.ID, readingIDs); err != nil {
			return err
		}
		if len(readings) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&readings).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// syncChildren deletes the account's child rows whose IDs are not in keep.
func syncChildren(tx *gorm.DB, child interface{}, accountID uuid.UUID, keep []uuid.UUID) error {
	query := tx.Where("account_id = ?", accountID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(child).Error
}
