package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gasline/gasline-backend/pkg/enums"
)

// VendorProductTier is one quantity band of a vendor product's delivery-fee
// ladder. Bands are ordered by Position and must partition the quantity
// domain without gaps; a nil ToQty marks the open-ended top band.
type VendorProductTier struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID  uuid.UUID              `gorm:"column:vendor_id;type:uuid;not null"`
	ProductID uuid.UUID              `gorm:"column:product_id;type:uuid;not null"`
	OrderType enums.OrderType        `gorm:"column:order_type;not null"`
	FromQty   int                    `gorm:"column:from_qty;not null"`
	ToQty     *int                   `gorm:"column:to_qty"`
	Position  int                    `gorm:"column:position;not null"`
	Pricings  []VendorProductPricing `gorm:"foreignKey:TierID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// Covers reports whether qty falls inside this band.
func (t VendorProductTier) Covers(qty int) bool {
	if qty < t.FromQty {
		return false
	}
	return t.ToQty == nil || qty <= *t.ToQty
}
