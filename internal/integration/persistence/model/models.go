// Package model defines database models for persistence layer.
package model

// All returns every model managed by the persistence layer, in migration order.
func All() []interface{} {
	return []interface{}{
		&BudgetModel{},
		&TransactionModel{},
		&SubscriptionModel{},
		&SubscriptionPaymentModel{},
		&UtilityAccountModel{},
		&UtilityPaymentModel{},
		&MeterReadingModel{},
	}
}
