package models

import (
	"time"
)

// ZipCode is delivery-area reference data. SalesTax is the combined rate
// (county rate one + county rate two + state rate, 0-100) recomputed by the
// zip-code admin flow whenever the county or state rates change.
type ZipCode struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Code      string    `gorm:"column:code;not null"`
	CountyID  int64     `gorm:"column:county_id;not null"`
	StateID   int64     `gorm:"column:state_id;not null"`
	SalesTax  float64   `gorm:"column:sales_tax;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
