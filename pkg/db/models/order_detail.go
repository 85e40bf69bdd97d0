package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gasline/gasline-backend/pkg/enums"
)

// OrderDetail is the persisted, fully priced order line. Monetary fields are
// written once by the order-creation flow from the pricing engine's output;
// DriverID is written by the daily assignment pass and stays nil until a
// driver is matched.
type OrderDetail struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID   uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	VendorID     uuid.UUID         `gorm:"column:vendor_id;type:uuid;not null"`
	DriverID     *uuid.UUID        `gorm:"column:driver_id;type:uuid"`
	ProductID    *uuid.UUID        `gorm:"column:product_id;type:uuid"`
	AccessoryID  *uuid.UUID        `gorm:"column:accessory_id;type:uuid"`
	Category     enums.Category    `gorm:"column:category;not null"`
	OrderType    enums.OrderType   `gorm:"column:order_type;not null"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Qty          int               `gorm:"column:qty;not null"`
	CylinderSize *int              `gorm:"column:cylinder_size"`
	ZipcodeID    int64             `gorm:"column:zipcode_id;not null"`
	TimeslotID   int64             `gorm:"column:timeslot_id;not null"`
	ScheduleDate time.Time         `gorm:"column:schedule_date;not null"`
	IsPaid       bool              `gorm:"column:is_paid;not null;default:false"`

	SubTotal                      decimal.Decimal `gorm:"column:sub_total;type:numeric(12,2);not null;default:0"`
	GrandTotal                    decimal.Decimal `gorm:"column:grand_total;type:numeric(12,2);not null;default:0"`
	SalesTaxAmount                decimal.Decimal `gorm:"column:sales_tax_amount;type:numeric(12,2);not null;default:0"`
	VendorDeliveryFee             decimal.Decimal `gorm:"column:vendor_delivery_fee;type:numeric(12,2);not null;default:0"`
	ServiceFee                    decimal.Decimal `gorm:"column:service_fee;type:numeric(12,2);not null;default:0"`
	ServiceCharge                 decimal.Decimal `gorm:"column:service_charge;type:numeric(12,2);not null;default:0"`
	DeliveryFee                   decimal.Decimal `gorm:"column:delivery_fee;type:numeric(12,2);not null;default:0"`
	PromocodeDiscount             decimal.Decimal `gorm:"column:promocode_discount;type:numeric(12,2);not null;default:0"`
	LocationAmount                decimal.Decimal `gorm:"column:location_amount;type:numeric(12,2);not null;default:0"`
	LeakageFee                    decimal.Decimal `gorm:"column:leakage_fee;type:numeric(12,2);not null;default:0"`
	VendorReceivedAmount          decimal.Decimal `gorm:"column:vendor_received_amount;type:numeric(12,2);not null;default:0"`
	AdminReceivedAmount           decimal.Decimal `gorm:"column:admin_received_amount;type:numeric(12,2);not null;default:0"`
	FreelanceDriverReceivedAmount decimal.Decimal `gorm:"column:freelance_driver_received_amount;type:numeric(12,2);not null;default:0"`
	CustomerCancellationCharge    decimal.Decimal `gorm:"column:customer_cancellation_charge;type:numeric(12,2);not null;default:0"`
	DriverCancellationCharge      decimal.Decimal `gorm:"column:driver_cancellation_charge;type:numeric(12,2);not null;default:0"`
	RefundAmount                  decimal.Decimal `gorm:"column:refund_amount;type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
