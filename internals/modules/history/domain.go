package history

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// CheckRecord is one observation of one URL. UP means a response was received
// before the probe timeout, whatever the status code was. StatusCode and
// ResponseTime are set exactly when Status is UP.
type CheckRecord struct {
	ID           uuid.UUID
	URL          string
	Status       Status
	StatusCode   *int
	ResponseTime *float64 // seconds
	CheckedAt    time.Time
}
