package alert

import "time"

// Event describes one UP->DOWN transition. One event per transition, not one
// per failing cycle, the orchestrator guarantees that.
type Event struct {
	URL       string    `json:"url"`
	Reason    string    `json:"reason,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}
