package schedule

import "time"

type CheckURLsRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,dive,required,url"`
}

type StatusResponse struct {
	LastRun       *string `json:"last_run"`
	NextRun       *string `json:"next_run"`
	EmailAlerts   bool    `json:"email_alerts"`
	RunInProgress bool    `json:"run_in_progress"`
}

type RunNowResponse struct {
	Status string `json:"status"`
}

type TrackedURLResponse struct {
	URL          string   `json:"url"`
	LastStatus   string   `json:"last_status,omitempty"`
	StatusCode   *int     `json:"status_code,omitempty"`
	ResponseTime *float64 `json:"response_time,omitempty"`
	CheckedAt    *string  `json:"checked_at,omitempty"`
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}
