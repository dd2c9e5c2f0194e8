package history

import "time"

type CheckRecordResponse struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	Status       string   `json:"status"`
	StatusCode   *int     `json:"status_code,omitempty"`
	ResponseTime *float64 `json:"response_time,omitempty"`
	CheckedAt    string   `json:"checked_at"`
}

// ToResponse renders a record with checked_at in the configured timezone.
func ToResponse(rec CheckRecord, loc *time.Location) CheckRecordResponse {
	return CheckRecordResponse{
		ID:           rec.ID.String(),
		URL:          rec.URL,
		Status:       string(rec.Status),
		StatusCode:   rec.StatusCode,
		ResponseTime: rec.ResponseTime,
		CheckedAt:    rec.CheckedAt.In(loc).Format(time.RFC3339Nano),
	}
}

func ToResponseList(recs []CheckRecord, loc *time.Location) []CheckRecordResponse {
	out := make([]CheckRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ToResponse(rec, loc))
	}
	return out
}
