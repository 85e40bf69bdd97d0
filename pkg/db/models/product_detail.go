package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gasline/gasline-backend/pkg/enums"
)

// ProductDetail is a vendor's sellable fuel product: the index price the
// customer pays per unit, an optional vendor discount, and whether sales tax
// applies to it.
type ProductDetail struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID        uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null"`
	Name            string          `gorm:"column:name;not null"`
	Category        enums.Category  `gorm:"column:category;not null"`
	IndexPrice      decimal.Decimal `gorm:"column:index_price;type:numeric(12,2);not null"`
	DiscountPercent float64         `gorm:"column:discount_percent;not null;default:0"`
	IsSalesTax      bool            `gorm:"column:is_sales_tax;not null;default:true"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
