package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gasline/gasline-backend/pkg/enums"
	"github.com/gasline/gasline-backend/pkg/types"
)

// DriverDetail is a driver profile read by the assignment pass. A nil
// VendorID marks a freelance driver available to any vendor's orders within
// their zip coverage.
type DriverDetail struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	VendorID      *uuid.UUID      `gorm:"column:vendor_id;type:uuid"`
	IsOnline      bool            `gorm:"column:is_online;not null;default:false"`
	IsApproved    bool            `gorm:"column:is_approved;not null;default:false"`
	IsSuspended   bool            `gorm:"column:is_suspended;not null;default:false"`
	OrderCapacity int             `gorm:"column:order_capacity;not null;default:0"`
	OrderType     enums.OrderType `gorm:"column:order_type;not null"`
	ZipcodeIDs    types.Int64List `gorm:"column:zipcode_ids;type:jsonb;serializer:json"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// Freelance reports whether the driver is unattached to any vendor.
func (d DriverDetail) Freelance() bool {
	return d.VendorID == nil
}

// Eligible reports whether the driver can take orders at all today.
func (d DriverDetail) Eligible() bool {
	return d.IsOnline && d.IsApproved && !d.IsSuspended
}
