package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gasline/gasline-backend/pkg/enums"
)

// VendorProductPricing attaches a delivery fee to a (tier, category,
// cylinder size) combination. CylinderSize is nil for fuel-delivery rows
// where size does not apply.
type VendorProductPricing struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TierID       uuid.UUID       `gorm:"column:tier_id;type:uuid;not null"`
	Category     enums.Category  `gorm:"column:category;not null"`
	CylinderSize *int            `gorm:"column:cylinder_size"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
