package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accessory is a flat-priced add-on item (regulators, hoses, covers).
type Accessory struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID  uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
