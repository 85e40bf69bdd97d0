package assignment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/gasline/gasline-backend/pkg/db/models"
	"github.com/gasline/gasline-backend/pkg/enums"
	"github.com/gasline/gasline-backend/pkg/logger"
	"github.com/gasline/gasline-backend/pkg/metrics"
	"github.com/gasline/gasline-backend/pkg/types"
)

type stubAssignmentRepo struct {
	orders      []models.OrderDetail
	freelancers []models.DriverDetail
	byVendor    map[uuid.UUID][]models.DriverDetail
	preAssigned map[uuid.UUID]int64

	assignments map[uuid.UUID]uuid.UUID
	taken       map[uuid.UUID]bool

	findVendorDrivers func(ctx context.Context, vendorID uuid.UUID) ([]models.DriverDetail, error)
	assignDriver      func(ctx context.Context, orderID, driverID uuid.UUID) (bool, error)
}

func (s *stubAssignmentRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubAssignmentRepo) FindUnassignedOrders(ctx context.Context, dayStart, dayEnd time.Time) ([]models.OrderDetail, error) {
	return s.orders, nil
}

func (s *stubAssignmentRepo) FindFreelanceDrivers(ctx context.Context) ([]models.DriverDetail, error) {
	return s.freelancers, nil
}

func (s *stubAssignmentRepo) FindVendorDrivers(ctx context.Context, vendorID uuid.UUID) ([]models.DriverDetail, error) {
	if s.findVendorDrivers != nil {
		return s.findVendorDrivers(ctx, vendorID)
	}
	return s.byVendor[vendorID], nil
}

func (s *stubAssignmentRepo) CountAssignedOrders(ctx context.Context, driverID uuid.UUID, dayStart, dayEnd time.Time) (int64, error) {
	return s.preAssigned[driverID], nil
}

func (s *stubAssignmentRepo) AssignDriver(ctx context.Context, orderID, driverID uuid.UUID) (bool, error) {
	if s.assignDriver != nil {
		return s.assignDriver(ctx, orderID, driverID)
	}
	if s.taken[orderID] {
		return false, nil
	}
	if s.assignments == nil {
		s.assignments = make(map[uuid.UUID]uuid.UUID)
	}
	s.assignments[orderID] = driverID
	return true, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestJob(t *testing.T, repo Repository) *Job {
	t.Helper()
	job, err := NewJob(JobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Repo:   repo,
		Tx:     passthroughTx{},
		Now:    func() time.Time { return time.Date(2026, 9, 2, 1, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	return job
}

func testOrder(vendorID uuid.UUID, zipcodeID int64, orderType enums.OrderType) models.OrderDetail {
	return models.OrderDetail{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		VendorID:     vendorID,
		OrderType:    orderType,
		Status:       enums.OrderStatusPending,
		ZipcodeID:    zipcodeID,
		TimeslotID:   1,
		ScheduleDate: time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC),
	}
}

func testDriver(vendorID *uuid.UUID, capacity int, orderType enums.OrderType, zips ...int64) models.DriverDetail {
	return models.DriverDetail{
		ID:            uuid.New(),
		VendorID:      vendorID,
		IsOnline:      true,
		IsApproved:    true,
		OrderCapacity: capacity,
		OrderType:     orderType,
		ZipcodeIDs:    types.Int64List(zips),
	}
}

func TestJobAssignsEligibleDriver(t *testing.T) {
	vendorID := uuid.New()
	driver := testDriver(nil, 5, enums.OrderTypeFuelDelivery, 75001)
	order := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{order},
		freelancers: []models.DriverDetail{driver},
	}

	if err := newTestJob(t, repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := repo.assignments[order.ID]; got != driver.ID {
		t.Fatalf("order assigned to %s, want %s", got, driver.ID)
	}
}

func TestJobSkipsDriversOutsideZipCoverage(t *testing.T) {
	vendorID := uuid.New()
	farDriver := testDriver(nil, 5, enums.OrderTypeFuelDelivery, 90210)
	order := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{order},
		freelancers: []models.DriverDetail{farDriver},
	}

	if err := newTestJob(t, repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.assignments) != 0 {
		t.Fatalf("expected no assignments, got %v", repo.assignments)
	}
}

func TestJobSkipsOrderTypeMismatch(t *testing.T) {
	vendorID := uuid.New()
	tankDriver := testDriver(nil, 5, enums.OrderTypeTankExchange, 75001)
	order := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{order},
		freelancers: []models.DriverDetail{tankDriver},
	}

	if err := newTestJob(t, repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.assignments) != 0 {
		t.Fatalf("expected no assignments, got %v", repo.assignments)
	}
}

func TestJobPrefersVendorDriversOverFreelance(t *testing.T) {
	vendorID := uuid.New()
	ownDriver := testDriver(&vendorID, 1, enums.OrderTypeFuelDelivery, 75001)
	freelancer := testDriver(nil, 10, enums.OrderTypeFuelDelivery, 75001)
	order := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{order},
		freelancers: []models.DriverDetail{freelancer},
		byVendor:    map[uuid.UUID][]models.DriverDetail{vendorID: {ownDriver}},
	}

	if err := newTestJob(t, repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := repo.assignments[order.ID]; got != ownDriver.ID {
		t.Fatalf("order assigned to %s, want vendor driver %s", got, ownDriver.ID)
	}
}

func TestJobHonorsCapacityWithinOneRun(t *testing.T) {
	vendorID := uuid.New()
	driver := testDriver(nil, 1, enums.OrderTypeFuelDelivery, 75001)
	first := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	second := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{first, second},
		freelancers: []models.DriverDetail{driver},
	}

	if err := newTestJob(t, repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.assignments) != 1 {
		t.Fatalf("capacity-1 driver took %d orders", len(repo.assignments))
	}
	if repo.assignments[first.ID] != driver.ID {
		t.Fatal("first order in schedule order should win the driver")
	}
}

func TestJobSeedsLedgerFromStoredAssignments(t *testing.T) {
	vendorID := uuid.New()
	driver := testDriver(nil, 3, enums.OrderTypeFuelDelivery, 75001)
	order := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{order},
		freelancers: []models.DriverDetail{driver},
		preAssigned: map[uuid.UUID]int64{driver.ID: 3},
	}

	if err := newTestJob(t, repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.assignments) != 0 {
		t.Fatal("driver already at capacity must not receive more orders")
	}
}

func TestJobSpreadsLoadToLeastBusyDriver(t *testing.T) {
	vendorID := uuid.New()
	busy := testDriver(nil, 5, enums.OrderTypeFuelDelivery, 75001)
	idle := testDriver(nil, 5, enums.OrderTypeFuelDelivery, 75001)
	order := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{order},
		freelancers: []models.DriverDetail{busy, idle},
		preAssigned: map[uuid.UUID]int64{busy.ID: 4},
	}

	if err := newTestJob(t, repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := repo.assignments[order.ID]; got != idle.ID {
		t.Fatalf("order assigned to %s, want least-busy driver %s", got, idle.ID)
	}
}

func TestJobLostRaceIsNotAnError(t *testing.T) {
	vendorID := uuid.New()
	driver := testDriver(nil, 5, enums.OrderTypeFuelDelivery, 75001)
	order := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{order},
		freelancers: []models.DriverDetail{driver},
		taken:       map[uuid.UUID]bool{order.ID: true},
	}

	reg := prometheus.NewRegistry()
	job, err := NewJob(JobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Repo:    repo,
		Tx:      passthroughTx{},
		Metrics: metrics.NewAssignmentMetrics(reg),
		Now:     func() time.Time { return time.Date(2026, 9, 2, 1, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("lost guarded update must not fail the run: %v", err)
	}
	if len(repo.assignments) != 0 {
		t.Fatal("no assignment should be recorded for a lost race")
	}
	if got := counterValue(t, reg, "gasline_orders_contested_total"); got != 1 {
		t.Fatalf("contested counter = %v, want 1", got)
	}
	if got := counterValue(t, reg, "gasline_orders_unassigned_total"); got != 0 {
		t.Fatalf("unassigned counter = %v, want 0", got)
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name {
			return family.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func TestJobSkipsUnavailableDriver(t *testing.T) {
	vendorID := uuid.New()
	offline := testDriver(nil, 5, enums.OrderTypeFuelDelivery, 75001)
	offline.IsOnline = false
	order := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{order},
		freelancers: []models.DriverDetail{offline},
	}

	if err := newTestJob(t, repo).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.assignments) != 0 {
		t.Fatal("an unavailable driver must not be assigned")
	}
}

func TestJobContinuesPastPerOrderFailures(t *testing.T) {
	vendorID := uuid.New()
	driver := testDriver(nil, 5, enums.OrderTypeFuelDelivery, 75001)
	broken := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	healthy := testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery)
	storeErr := errors.New("connection reset")
	repo := &stubAssignmentRepo{
		orders:      []models.OrderDetail{broken, healthy},
		freelancers: []models.DriverDetail{driver},
	}
	repo.assignDriver = func(ctx context.Context, orderID, driverID uuid.UUID) (bool, error) {
		if orderID == broken.ID {
			return false, storeErr
		}
		if repo.assignments == nil {
			repo.assignments = make(map[uuid.UUID]uuid.UUID)
		}
		repo.assignments[orderID] = driverID
		return true, nil
	}

	err := newTestJob(t, repo).Run(context.Background())
	if !errors.Is(err, storeErr) {
		t.Fatalf("run error should carry the per-order failure, got %v", err)
	}
	if repo.assignments[healthy.ID] != driver.ID {
		t.Fatal("orders after a failure must still be processed")
	}
}

func TestJobStopsOnContextCancel(t *testing.T) {
	vendorID := uuid.New()
	driver := testDriver(nil, 5, enums.OrderTypeFuelDelivery, 75001)
	orders := []models.OrderDetail{
		testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery),
		testOrder(vendorID, 75001, enums.OrderTypeFuelDelivery),
	}
	repo := &stubAssignmentRepo{
		orders:      orders,
		freelancers: []models.DriverDetail{driver},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := newTestJob(t, repo).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if len(repo.assignments) != 0 {
		t.Fatal("cancelled run must not assign")
	}
}
