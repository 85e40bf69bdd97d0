package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gasline/gasline-backend/pkg/db/models"
	"github.com/gasline/gasline-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an assignment repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindUnassignedOrders(ctx context.Context, dayStart, dayEnd time.Time) ([]models.OrderDetail, error) {
	var orders []models.OrderDetail
	err := r.db.WithContext(ctx).
		Where("driver_id IS NULL").
		Where("status IN ?", enums.AssignableStatuses()).
		Where("schedule_date >= ? AND schedule_date < ?", dayStart, dayEnd).
		Order("schedule_date ASC, created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindFreelanceDrivers(ctx context.Context) ([]models.DriverDetail, error) {
	var drivers []models.DriverDetail
	err := r.db.WithContext(ctx).
		Where("vendor_id IS NULL").
		Where("is_online = ? AND is_approved = ? AND is_suspended = ?", true, true, false).
		Find(&drivers).Error
	if err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *repository) FindVendorDrivers(ctx context.Context, vendorID uuid.UUID) ([]models.DriverDetail, error) {
	var drivers []models.DriverDetail
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Where("is_online = ? AND is_approved = ? AND is_suspended = ?", true, true, false).
		Find(&drivers).Error
	if err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *repository) CountAssignedOrders(ctx context.Context, driverID uuid.UUID, dayStart, dayEnd time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderDetail{}).
		Where("driver_id = ?", driverID).
		Where("schedule_date >= ? AND schedule_date < ?", dayStart, dayEnd).
		Where("status <> ?", enums.OrderStatusCancelled).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AssignDriver is guarded on driver_id IS NULL so a concurrent writer can
// never steal an order that was just assigned.
func (r *repository) AssignDriver(ctx context.Context, orderID, driverID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderDetail{}).
		Where("id = ? AND driver_id IS NULL", orderID).
		Update("driver_id", driverID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
