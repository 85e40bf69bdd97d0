package models

import (
	"time"

	"github.com/google/uuid"
)

// VendorSchedule declares whether a vendor accepts orders in a given
// (weekday, time slot) cell and how many it will take per calendar day.
type VendorSchedule struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID            uuid.UUID `gorm:"column:vendor_id;type:uuid;not null"`
	Weekday             int       `gorm:"column:weekday;not null"`
	TimeslotID          int64     `gorm:"column:timeslot_id;not null"`
	MaxAcceptOrderLimit int       `gorm:"column:max_accept_order_limit;not null;default:0"`
	IsChecked           bool      `gorm:"column:is_checked;not null;default:false"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
