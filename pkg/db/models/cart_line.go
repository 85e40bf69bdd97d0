package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gasline/gasline-backend/pkg/enums"
)

// CartLine is one purchasable unit in a customer's active cart. Exactly one
// of ProductID/AccessoryID is set; together with Category it decides the
// pricing basis. Lines are soft-deleted on removal or once converted into an
// order.
type CartLine struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID    uuid.UUID       `gorm:"column:customer_id;type:uuid;not null" validate:"required"`
	VendorID      uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null" validate:"required"`
	ProductID     *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	AccessoryID   *uuid.UUID      `gorm:"column:accessory_id;type:uuid"`
	Category      enums.Category  `gorm:"column:category;not null" validate:"required"`
	OrderType     enums.OrderType `gorm:"column:order_type;not null" validate:"required"`
	CylinderSize  *int            `gorm:"column:cylinder_size"`
	Qty           int             `gorm:"column:qty;not null" validate:"gt=0"`
	ZipcodeID     int64           `gorm:"column:zipcode_id;not null" validate:"gt=0"`
	TimeslotID    int64           `gorm:"column:timeslot_id;not null" validate:"gt=0"`
	LocationID    *uuid.UUID      `gorm:"column:location_id;type:uuid"`
	LocationPrice decimal.Decimal `gorm:"column:location_price;type:numeric(12,2);not null;default:0"`
	PromoCodeID   *uuid.UUID      `gorm:"column:promo_code_id;type:uuid"`
	ScheduleDate  time.Time       `gorm:"column:schedule_date;not null" validate:"required"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt     gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}
