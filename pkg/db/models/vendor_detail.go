package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorDetail holds the vendor-level commercial settings the pricing engine
// reads: the platform commission percentage (0-100) and the flat leakage fee
// applied to exchange orders.
type VendorDetail struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	BusinessName      string          `gorm:"column:business_name;not null"`
	CommissionPercent float64         `gorm:"column:commission_percent;not null;default:0"`
	LeakageFee        decimal.Decimal `gorm:"column:leakage_fee;type:numeric(12,2);not null;default:0"`
	IsApproved        bool            `gorm:"column:is_approved;not null;default:false"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
