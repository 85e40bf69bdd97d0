package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLedgerSeedsOnceThenCountsInMemory(t *testing.T) {
	driverID := uuid.New()
	repo := &countingRepo{counts: map[uuid.UUID]int64{driverID: 2}}
	dayStart := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	ledger := NewLedger(repo, dayStart, dayStart.AddDate(0, 0, 1))
	ctx := context.Background()

	remaining, err := ledger.Remaining(ctx, driverID, 5)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining != 3 {
		t.Fatalf("remaining = %d, want 3", remaining)
	}

	ledger.Record(driverID)
	ledger.Record(driverID)
	remaining, err = ledger.Remaining(ctx, driverID, 5)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("remaining after records = %d, want 1", remaining)
	}
	if repo.queries != 1 {
		t.Fatalf("store queried %d times, want 1", repo.queries)
	}
}

func TestLedgerClampsOverCapacityToZero(t *testing.T) {
	driverID := uuid.New()
	repo := &countingRepo{counts: map[uuid.UUID]int64{driverID: 7}}
	ledger := NewLedger(repo, time.Time{}, time.Time{})

	remaining, err := ledger.Remaining(context.Background(), driverID, 5)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
}

type countingRepo struct {
	stubAssignmentRepo
	counts  map[uuid.UUID]int64
	queries int
}

func (c *countingRepo) CountAssignedOrders(ctx context.Context, driverID uuid.UUID, dayStart, dayEnd time.Time) (int64, error) {
	c.queries++
	return c.counts[driverID], nil
}
