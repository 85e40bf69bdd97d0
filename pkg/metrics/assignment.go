package metrics

import "github.com/prometheus/client_golang/prometheus"

// AssignmentMetrics tracks per-run outcomes of the driver-assignment batch.
// Orders left unassigned are the operational signal to watch: they roll
// forward to the next day's run.
type AssignmentMetrics struct {
	assigned   prometheus.Counter
	unassigned prometheus.Counter
	contested  prometheus.Counter
	failed     prometheus.Counter
}

// NewAssignmentMetrics registers the assignment counters on the provided
// registerer.
func NewAssignmentMetrics(reg prometheus.Registerer) *AssignmentMetrics {
	if reg == nil {
		return &AssignmentMetrics{}
	}
	assigned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gasline",
		Name:      "orders_assigned_total",
		Help:      "Orders matched to a driver by the assignment pass.",
	})
	unassigned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gasline",
		Name:      "orders_unassigned_total",
		Help:      "Orders that exhausted all candidates and stayed unassigned.",
	})
	contested := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gasline",
		Name:      "orders_contested_total",
		Help:      "Orders found already assigned by a concurrent writer.",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gasline",
		Name:      "assignment_errors_total",
		Help:      "Orders skipped because of a store error during the pass.",
	})
	reg.MustRegister(assigned, unassigned, contested, failed)
	return &AssignmentMetrics{
		assigned:   assigned,
		unassigned: unassigned,
		contested:  contested,
		failed:     failed,
	}
}

// AddAssigned bumps the assigned-orders counter.
func (a *AssignmentMetrics) AddAssigned(n int) {
	if a == nil || a.assigned == nil {
		return
	}
	a.assigned.Add(float64(n))
}

// AddUnassigned bumps the unassigned-orders counter.
func (a *AssignmentMetrics) AddUnassigned(n int) {
	if a == nil || a.unassigned == nil {
		return
	}
	a.unassigned.Add(float64(n))
}

// AddContested bumps the lost-guarded-update counter.
func (a *AssignmentMetrics) AddContested(n int) {
	if a == nil || a.contested == nil {
		return
	}
	a.contested.Add(float64(n))
}

// AddFailed bumps the skipped-with-error counter.
func (a *AssignmentMetrics) AddFailed(n int) {
	if a == nil || a.failed == nil {
		return
	}
	a.failed.Add(float64(n))
}
