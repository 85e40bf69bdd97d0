package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gasline/gasline-backend/pkg/db/models"
)

// Repository is the store surface the daily assignment pass needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// FindUnassignedOrders returns the day's driverless orders in
	// assignment order: schedule date first, then creation time.
	FindUnassignedOrders(ctx context.Context, dayStart, dayEnd time.Time) ([]models.OrderDetail, error)

	// FindFreelanceDrivers returns every eligible freelance driver.
	FindFreelanceDrivers(ctx context.Context) ([]models.DriverDetail, error)

	// FindVendorDrivers returns the vendor's own eligible drivers.
	FindVendorDrivers(ctx context.Context, vendorID uuid.UUID) ([]models.DriverDetail, error)

	// CountAssignedOrders counts orders already carrying the driver for the
	// day, regardless of which process assigned them.
	CountAssignedOrders(ctx context.Context, driverID uuid.UUID, dayStart, dayEnd time.Time) (int64, error)

	// AssignDriver sets the order's driver only if the order is still
	// unassigned. It reports whether the write won.
	AssignDriver(ctx context.Context, orderID, driverID uuid.UUID) (bool, error)
}
