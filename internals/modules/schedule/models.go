package schedule

import "time"

// Status is a point-in-time copy of the run state, safe to hand out.
type Status struct {
	LastRun       *time.Time
	NextRun       *time.Time
	EmailAlerts   bool
	RunInProgress bool
}

// TrackedURL pairs a tracked URL with its cached last-known result.
type TrackedURL struct {
	URL          string
	LastStatus   string // empty before the first observation
	StatusCode   *int
	ResponseTime *float64
	CheckedAt    *time.Time
}
