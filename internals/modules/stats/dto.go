package stats

type SummaryResponse struct {
	URL         string  `json:"url"`
	TotalChecks int     `json:"total_checks"`
	UpCount     int     `json:"up_count"`
	UpPercent   float64 `json:"up_percent"`
	ErrorCount  int     `json:"error_count"`
	ErrorRate   float64 `json:"error_rate"`
}
