package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCronJobMetricsNilRegisterer(t *testing.T) {
	m := NewCronJobMetrics(nil)
	// all recorders must be no-ops, not panics
	m.ObserveDuration("driver-assignment", time.Second)
	m.IncSuccess("driver-assignment")
	m.IncFailure("")
}

func TestCronJobMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	m.ObserveDuration("driver-assignment", 250*time.Millisecond)
	m.IncSuccess("driver-assignment")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}

func TestAssignmentMetrics(t *testing.T) {
	var nilMetrics *AssignmentMetrics
	nilMetrics.AddAssigned(1) // nil receiver must be safe

	reg := prometheus.NewRegistry()
	m := NewAssignmentMetrics(reg)
	m.AddAssigned(3)
	m.AddUnassigned(1)
	m.AddContested(1)
	m.AddFailed(0)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 4 {
		t.Fatalf("expected 4 metric families, got %d", len(families))
	}
}
