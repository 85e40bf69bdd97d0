package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gasline/gasline-backend/pkg/enums"
)

// PromoCode is a percentage-off-subtotal discount with an activation window
// and optional category restriction.
type PromoCode struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code            string          `gorm:"column:code;not null;uniqueIndex"`
	DiscountPercent float64         `gorm:"column:discount_percent;not null"`
	IsActive        bool            `gorm:"column:is_active;not null;default:false"`
	StartAt         time.Time       `gorm:"column:start_at;not null"`
	EndAt           time.Time       `gorm:"column:end_at;not null"`
	Category        *enums.Category `gorm:"column:category"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// ActiveAt reports whether the promo can be honored at the given instant for
// the given line category.
func (p PromoCode) ActiveAt(now time.Time, category enums.Category) bool {
	if !p.IsActive {
		return false
	}
	if now.Before(p.StartAt) || now.After(p.EndAt) {
		return false
	}
	if p.Category != nil && *p.Category != category {
		return false
	}
	return true
}
