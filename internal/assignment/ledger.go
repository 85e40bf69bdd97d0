package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Ledger tracks per-driver load for a single run. It seeds each driver's
// count from the store on first sight, then counts this run's own
// assignments in memory so two orders in the same pass cannot both consume
// a driver's last slot.
type Ledger struct {
	repo     Repository
	dayStart time.Time
	dayEnd   time.Time
	assigned map[uuid.UUID]int
}

// NewLedger builds a ledger for one run over the given day window.
func NewLedger(repo Repository, dayStart, dayEnd time.Time) *Ledger {
	return &Ledger{
		repo:     repo,
		dayStart: dayStart,
		dayEnd:   dayEnd,
		assigned: make(map[uuid.UUID]int),
	}
}

// Remaining returns how many more orders the driver can take today.
func (l *Ledger) Remaining(ctx context.Context, driverID uuid.UUID, capacity int) (int, error) {
	count, ok := l.assigned[driverID]
	if !ok {
		stored, err := l.repo.CountAssignedOrders(ctx, driverID, l.dayStart, l.dayEnd)
		if err != nil {
			return 0, err
		}
		count = int(stored)
		l.assigned[driverID] = count
	}
	remaining := capacity - count
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Record charges one assignment against the driver for the rest of the run.
func (l *Ledger) Record(driverID uuid.UUID) {
	l.assigned[driverID]++
}
