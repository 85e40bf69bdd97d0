package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gasline/gasline-backend/pkg/enums"
)

// AppSetting is an admin-configured flat platform charge. OrderType is nil
// for global charges (service fee, service charge, delivery fee) and set for
// per-order-type charges (cancellation charges, freelance driver price).
type AppSetting struct {
	ID        int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Key       enums.ChargeKey  `gorm:"column:key;not null"`
	OrderType *enums.OrderType `gorm:"column:order_type"`
	Value     decimal.Decimal  `gorm:"column:value;type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
