package probe

import (
	"time"

	"pulsecheck/internals/modules/history"
)

// Outcome is the result of a single reachability probe. Reason is only set on
// DOWN outcomes and never leaves the process, it exists for logs and alerts.
type Outcome struct {
	URL          string
	Status       history.Status
	StatusCode   *int
	ResponseTime *float64 // seconds
	CheckedAt    time.Time
	Reason       string
}
