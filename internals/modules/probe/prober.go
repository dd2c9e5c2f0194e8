package probe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"pulsecheck/internals/metrics"
	"pulsecheck/internals/modules/history"

	"github.com/rs/zerolog"
)

// Prober runs one GET against one URL. A response of any status code counts
// as UP, reachability is what gets measured, not application health.
type Prober struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *zerolog.Logger
}

func NewProber(httpClient *http.Client, timeout time.Duration, logger *zerolog.Logger) *Prober {
	return &Prober{
		httpClient: httpClient,
		timeout:    timeout,
		logger:     logger,
	}
}

// Check performs a single attempt, no retries. Retry policy, if ever added,
// belongs to the orchestrator.
func (p *Prober) Check(ctx context.Context, url string) Outcome {

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return p.down(url, "INVALID_REQUEST", time.Since(start))
	}

	resp, err := p.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		// DNS err, network err, TLS err or context timeout of a hanging request
		return p.down(url, classifyError(err), elapsed)
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	responseTime := elapsed.Seconds()

	metrics.ProbeStatus.WithLabelValues(string(history.StatusUp)).Inc()
	metrics.ProbeDuration.WithLabelValues(string(history.StatusUp)).Observe(responseTime)

	return Outcome{
		URL:          url,
		Status:       history.StatusUp,
		StatusCode:   &code,
		ResponseTime: &responseTime,
		CheckedAt:    time.Now(),
	}
}

func (p *Prober) down(url, reason string, elapsed time.Duration) Outcome {
	p.logger.Debug().
		Str("url", url).
		Str("reason", reason).
		Msg("probe failed")

	metrics.ProbeStatus.WithLabelValues(string(history.StatusDown)).Inc()
	metrics.ProbeDuration.WithLabelValues(string(history.StatusDown)).Observe(elapsed.Seconds())

	return Outcome{
		URL:       url,
		Status:    history.StatusDown,
		CheckedAt: time.Now(),
		Reason:    reason,
	}
}

func classifyError(err error) string {

	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "DNS_FAILURE"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "NETWORK_TIMEOUT"
		}
		return "NETWORK_ERROR"
	}

	return "UNKNOWN_ERROR"
}
