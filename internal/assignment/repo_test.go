package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gasline/gasline-backend/pkg/db/models"
	"github.com/gasline/gasline-backend/pkg/enums"
	"github.com/gasline/gasline-backend/pkg/logger"
	"github.com/gasline/gasline-backend/pkg/types"
)

func setupAssignmentTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{`
CREATE TABLE order_details (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  driver_id TEXT,
  product_id TEXT,
  accessory_id TEXT,
  category INTEGER NOT NULL,
  order_type INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  qty INTEGER NOT NULL,
  cylinder_size INTEGER,
  zipcode_id INTEGER NOT NULL,
  timeslot_id INTEGER NOT NULL,
  schedule_date DATETIME NOT NULL,
  is_paid INTEGER NOT NULL DEFAULT 0,
  sub_total NUMERIC NOT NULL DEFAULT 0,
  grand_total NUMERIC NOT NULL DEFAULT 0,
  sales_tax_amount NUMERIC NOT NULL DEFAULT 0,
  vendor_delivery_fee NUMERIC NOT NULL DEFAULT 0,
  service_fee NUMERIC NOT NULL DEFAULT 0,
  service_charge NUMERIC NOT NULL DEFAULT 0,
  delivery_fee NUMERIC NOT NULL DEFAULT 0,
  promocode_discount NUMERIC NOT NULL DEFAULT 0,
  location_amount NUMERIC NOT NULL DEFAULT 0,
  leakage_fee NUMERIC NOT NULL DEFAULT 0,
  vendor_received_amount NUMERIC NOT NULL DEFAULT 0,
  admin_received_amount NUMERIC NOT NULL DEFAULT 0,
  freelance_driver_received_amount NUMERIC NOT NULL DEFAULT 0,
  customer_cancellation_charge NUMERIC NOT NULL DEFAULT 0,
  driver_cancellation_charge NUMERIC NOT NULL DEFAULT 0,
  refund_amount NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE driver_details (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  vendor_id TEXT,
  is_online INTEGER NOT NULL DEFAULT 0,
  is_approved INTEGER NOT NULL DEFAULT 0,
  is_suspended INTEGER NOT NULL DEFAULT 0,
  order_capacity INTEGER NOT NULL DEFAULT 0,
  order_type INTEGER NOT NULL,
  zipcode_ids TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, mutate func(*models.OrderDetail)) models.OrderDetail {
	t.Helper()
	order := models.OrderDetail{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		VendorID:     uuid.New(),
		Category:     enums.CategoryFuelDelivery,
		OrderType:    enums.OrderTypeFuelDelivery,
		Status:       enums.OrderStatusPending,
		Qty:          1,
		ZipcodeID:    75001,
		TimeslotID:   1,
		ScheduleDate: time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(&order)
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestRepositoryFindUnassignedOrders(t *testing.T) {
	db := setupAssignmentTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	dayStart := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	late := seedOrder(t, db, func(o *models.OrderDetail) {
		o.ScheduleDate = dayStart.Add(15 * time.Hour)
	})
	early := seedOrder(t, db, func(o *models.OrderDetail) {
		o.ScheduleDate = dayStart.Add(8 * time.Hour)
	})
	driverID := uuid.New()
	seedOrder(t, db, func(o *models.OrderDetail) { o.DriverID = &driverID })
	seedOrder(t, db, func(o *models.OrderDetail) { o.Status = enums.OrderStatusDelivered })
	seedOrder(t, db, func(o *models.OrderDetail) {
		o.ScheduleDate = dayStart.AddDate(0, 0, 2)
	})

	orders, err := repo.FindUnassignedOrders(ctx, dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, early.ID, orders[0].ID, "earliest schedule date first")
	assert.Equal(t, late.ID, orders[1].ID)
}

func TestRepositoryDriverPools(t *testing.T) {
	db := setupAssignmentTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	seedDriver := func(vendor *uuid.UUID, online, approved, suspended bool) models.DriverDetail {
		driver := models.DriverDetail{
			ID:          uuid.New(),
			UserID:      uuid.New(),
			VendorID:    vendor,
			IsOnline:    online,
			IsApproved:  approved,
			IsSuspended: suspended,
			OrderType:   enums.OrderTypeFuelDelivery,
		}
		require.NoError(t, db.Create(&driver).Error)
		return driver
	}

	goodFreelancer := seedDriver(nil, true, true, false)
	seedDriver(nil, false, true, false)
	seedDriver(nil, true, true, true)
	ownDriver := seedDriver(&vendorID, true, true, false)
	seedDriver(&vendorID, true, false, false)

	freelancers, err := repo.FindFreelanceDrivers(ctx)
	require.NoError(t, err)
	require.Len(t, freelancers, 1)
	assert.Equal(t, goodFreelancer.ID, freelancers[0].ID)
	assert.True(t, freelancers[0].Freelance())
	assert.True(t, freelancers[0].Eligible())

	vendorDrivers, err := repo.FindVendorDrivers(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, vendorDrivers, 1)
	assert.Equal(t, ownDriver.ID, vendorDrivers[0].ID)
	assert.False(t, vendorDrivers[0].Freelance())
	assert.True(t, vendorDrivers[0].Eligible())
}

func TestRepositoryAssignDriverGuarded(t *testing.T) {
	db := setupAssignmentTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, nil)
	first := uuid.New()
	second := uuid.New()

	won, err := repo.AssignDriver(ctx, order.ID, first)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.AssignDriver(ctx, order.ID, second)
	require.NoError(t, err)
	assert.False(t, won, "already-assigned order must not be stolen")

	var stored models.OrderDetail
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	require.NotNil(t, stored.DriverID)
	assert.Equal(t, first, *stored.DriverID)
}

type dbTxRunner struct {
	db *gorm.DB
}

func (r dbTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func TestJobRunTwiceDoesNotReassignOrOverbook(t *testing.T) {
	db := setupAssignmentTestDB(t)
	ctx := context.Background()

	driver := models.DriverDetail{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		IsOnline:      true,
		IsApproved:    true,
		OrderCapacity: 1,
		OrderType:     enums.OrderTypeFuelDelivery,
		ZipcodeIDs:    types.Int64List{75001},
	}
	require.NoError(t, db.Create(&driver).Error)

	first := seedOrder(t, db, func(o *models.OrderDetail) {
		o.ScheduleDate = time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)
	})
	second := seedOrder(t, db, func(o *models.OrderDetail) {
		o.ScheduleDate = time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)
	})

	job, err := NewJob(JobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Repo:   NewRepository(db),
		Tx:     dbTxRunner{db: db},
		Now:    func() time.Time { return time.Date(2026, 9, 2, 1, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	require.NoError(t, job.Run(ctx))
	require.NoError(t, job.Run(ctx))

	var stored []models.OrderDetail
	require.NoError(t, db.Order("schedule_date ASC").Find(&stored).Error)
	require.Len(t, stored, 2)

	require.NotNil(t, stored[0].DriverID)
	assert.Equal(t, driver.ID, *stored[0].DriverID, "earliest order wins the capacity-1 driver")
	assert.Nil(t, stored[1].DriverID, "second order stays unassigned at capacity, even across runs")
	assert.Equal(t, first.ID, stored[0].ID)
	assert.Equal(t, second.ID, stored[1].ID)

	count, err := NewRepository(db).CountAssignedOrders(ctx, driver.ID,
		time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "driver never exceeds capacity across repeated runs")
}

func TestRepositoryCountAssignedOrders(t *testing.T) {
	db := setupAssignmentTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	driverID := uuid.New()
	dayStart := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	seedOrder(t, db, func(o *models.OrderDetail) {
		o.DriverID = &driverID
		o.ScheduleDate = dayStart.Add(9 * time.Hour)
	})
	seedOrder(t, db, func(o *models.OrderDetail) {
		o.DriverID = &driverID
		o.Status = enums.OrderStatusCancelled
		o.ScheduleDate = dayStart.Add(10 * time.Hour)
	})
	seedOrder(t, db, func(o *models.OrderDetail) {
		o.DriverID = &driverID
		o.ScheduleDate = dayStart.AddDate(0, 0, 1).Add(time.Hour)
	})

	count, err := repo.CountAssignedOrders(ctx, driverID, dayStart, dayEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "cancelled and out-of-window orders do not count")
}
