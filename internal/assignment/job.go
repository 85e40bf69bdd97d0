package assignment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/gasline/gasline-backend/pkg/db/models"
	"github.com/gasline/gasline-backend/pkg/logger"
	"github.com/gasline/gasline-backend/pkg/metrics"
)

// JobName identifies the daily driver assignment pass in logs, metrics and
// the cron registry.
const JobName = "driver-assignment"

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// JobParams configure the assignment job.
type JobParams struct {
	Logger   *logger.Logger
	Repo     Repository
	Tx       TxRunner
	Metrics  *metrics.AssignmentMetrics
	Location *time.Location
	Now      func() time.Time
}

// Job walks the day's driverless orders and matches each to the most
// available eligible driver. Vendor-owned drivers are tried before the
// freelance pool; within each pool the driver with the most remaining
// capacity wins.
type Job struct {
	logg     *logger.Logger
	repo     Repository
	tx       TxRunner
	metrics  *metrics.AssignmentMetrics
	location *time.Location
	now      func() time.Time
}

// NewJob builds the daily assignment job.
func NewJob(params JobParams) (*Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("assignment repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	location := params.Location
	if location == nil {
		location = time.UTC
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Job{
		logg:     params.Logger,
		repo:     params.Repo,
		tx:       params.Tx,
		metrics:  params.Metrics,
		location: location,
		now:      now,
	}, nil
}

// Name implements cron.Job.
func (j *Job) Name() string { return JobName }

// Run implements cron.Job. Per-order failures are logged and counted but do
// not stop the pass; the combined error is returned at the end.
func (j *Job) Run(ctx context.Context) error {
	ctx = j.logg.WithJob(ctx, JobName)

	day := j.now().In(j.location)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, j.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	orders, err := j.repo.FindUnassignedOrders(ctx, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("load unassigned orders: %w", err)
	}
	if len(orders) == 0 {
		j.logg.Info(ctx, "no unassigned orders for today")
		return nil
	}

	freelancers, err := j.repo.FindFreelanceDrivers(ctx)
	if err != nil {
		return fmt.Errorf("load freelance drivers: %w", err)
	}

	ledger := NewLedger(j.repo, dayStart, dayEnd)
	vendorDrivers := map[uuid.UUID][]models.DriverDetail{}

	var assigned, unassigned, contested, failed int
	var runErr error
	for i := range orders {
		if err := ctx.Err(); err != nil {
			runErr = multierr.Append(runErr, err)
			break
		}
		order := orders[i]
		orderCtx := j.logg.WithOrderID(ctx, order.ID.String())

		ownDrivers, ok := vendorDrivers[order.VendorID]
		if !ok {
			ownDrivers, err = j.repo.FindVendorDrivers(orderCtx, order.VendorID)
			if err != nil {
				j.logg.Error(orderCtx, "load vendor drivers", err)
				runErr = multierr.Append(runErr, err)
				failed++
				continue
			}
			vendorDrivers[order.VendorID] = ownDrivers
		}

		driver, err := j.pickDriver(orderCtx, order, ownDrivers, freelancers, ledger)
		if err != nil {
			j.logg.Error(orderCtx, "pick driver", err)
			runErr = multierr.Append(runErr, err)
			failed++
			continue
		}
		if driver == nil {
			j.logg.Warn(orderCtx, "no eligible driver with capacity")
			unassigned++
			continue
		}

		won, err := j.assign(orderCtx, order.ID, driver.ID)
		if err != nil {
			j.logg.Error(orderCtx, "assign driver", err)
			runErr = multierr.Append(runErr, err)
			failed++
			continue
		}
		if !won {
			// Another writer beat us to the order; nothing to undo.
			j.logg.Warn(orderCtx, "order already assigned elsewhere")
			contested++
			continue
		}
		ledger.Record(driver.ID)
		assigned++
		j.logg.Info(j.logg.WithDriverID(orderCtx, driver.ID.String()), "driver assigned")
	}

	j.metrics.AddAssigned(assigned)
	j.metrics.AddUnassigned(unassigned)
	j.metrics.AddContested(contested)
	j.metrics.AddFailed(failed)
	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"orders":     len(orders),
		"assigned":   assigned,
		"unassigned": unassigned,
		"contested":  contested,
		"failed":     failed,
	}), "assignment pass finished")
	return runErr
}

// pickDriver returns the best candidate for the order or nil when nobody
// eligible has capacity left.
func (j *Job) pickDriver(ctx context.Context, order models.OrderDetail, ownDrivers, freelancers []models.DriverDetail, ledger *Ledger) (*models.DriverDetail, error) {
	for _, pool := range [][]models.DriverDetail{ownDrivers, freelancers} {
		driver, err := j.bestInPool(ctx, order, pool, ledger)
		if err != nil {
			return nil, err
		}
		if driver != nil {
			return driver, nil
		}
	}
	return nil, nil
}

func (j *Job) bestInPool(ctx context.Context, order models.OrderDetail, pool []models.DriverDetail, ledger *Ledger) (*models.DriverDetail, error) {
	type candidate struct {
		driver    models.DriverDetail
		remaining int
	}
	var candidates []candidate
	for _, driver := range pool {
		if !eligible(driver, order) {
			continue
		}
		remaining, err := ledger.Remaining(ctx, driver.ID, driver.OrderCapacity)
		if err != nil {
			return nil, fmt.Errorf("driver %s load: %w", driver.ID, err)
		}
		if remaining <= 0 {
			continue
		}
		candidates = append(candidates, candidate{driver: driver, remaining: remaining})
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].remaining > candidates[b].remaining
	})
	best := candidates[0].driver
	return &best, nil
}

// eligible applies the static filters: the driver must be able to take
// orders at all, serve the order's zipcode, and carry its order type. The
// store queries pre-filter on availability, but the pool may be minutes old
// by the end of a large pass.
func eligible(driver models.DriverDetail, order models.OrderDetail) bool {
	if !driver.Eligible() {
		return false
	}
	if driver.OrderType != order.OrderType {
		return false
	}
	return driver.ZipcodeIDs.Contains(order.ZipcodeID)
}

func (j *Job) assign(ctx context.Context, orderID, driverID uuid.UUID) (bool, error) {
	var won bool
	err := j.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		won, err = j.repo.WithTx(tx).AssignDriver(ctx, orderID, driverID)
		return err
	})
	return won, err
}
