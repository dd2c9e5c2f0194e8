package schedule

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"pulsecheck/internals/modules/alert"
	"pulsecheck/internals/modules/history"
	"pulsecheck/internals/modules/probe"

	"github.com/rs/zerolog"
)

// ErrCycleInProgress is returned when a trigger arrives while a cycle is
// RUNNING. Triggers are rejected, never queued, so two cycles can never
// overlap.
var ErrCycleInProgress = errors.New("check cycle already in progress")

type Prober interface {
	Check(ctx context.Context, url string) probe.Outcome
}

// Tracker persists the tracked URL set and caches each URL's latest result.
type Tracker interface {
	AddTracked(ctx context.Context, urls ...string) error
	TrackedURLs(ctx context.Context) ([]string, error)
	StoreLastResult(ctx context.Context, url, status string, code *int, responseTime *float64, checkedAt time.Time) error
	LastResult(ctx context.Context, url string) (map[string]string, error)
}

type Notifier interface {
	Enqueue(e alert.Event)
}

// Orchestrator owns the check cadence. It is the only writer of the run
// state and of the last-known-status map; everything else reads snapshots.
type Orchestrator struct {
	ctx     context.Context
	prober  Prober
	store   history.Store
	tracker Tracker
	alerts  Notifier
	logger  *zerolog.Logger

	cadence     time.Duration
	concurrency int
	alertsOn    bool

	mu         sync.Mutex
	running    bool
	lastRun    *time.Time
	nextRun    *time.Time
	lastStatus map[string]history.Status // in-memory on purpose: a restart forgets transitions
}

func NewOrchestrator(
	ctx context.Context,
	prober Prober,
	store history.Store,
	tracker Tracker,
	alerts Notifier,
	cadence time.Duration,
	concurrency int,
	alertsOn bool,
	logger *zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		ctx:         ctx,
		prober:      prober,
		store:       store,
		tracker:     tracker,
		alerts:      alerts,
		logger:      logger,
		cadence:     cadence,
		concurrency: concurrency,
		alertsOn:    alertsOn,
		lastStatus:  make(map[string]history.Status),
	}
}

// Start runs the periodic timer loop until the process context is cancelled.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	next := time.Now().Add(o.cadence)
	o.nextRun = &next
	o.mu.Unlock()

	ticker := time.NewTicker(o.cadence)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-o.ctx.Done():
				return
			case tick := <-ticker.C:
				o.runScheduled(tick)
			}
		}
	}()
}

func (o *Orchestrator) runScheduled(tick time.Time) {
	if !o.tryBegin() {
		// previous cycle still draining, coalesce into the next tick
		o.logger.Warn().Msg("scheduled cycle skipped, previous cycle still running")
		return
	}
	// next_run is anchored to the tick, not to when this cycle drains
	next := tick.Add(o.cadence)
	defer o.finish(&next)

	urls, err := o.tracker.TrackedURLs(o.ctx)
	if err != nil {
		o.logger.Error().Err(err).Msg("failed to load tracked url set")
		return
	}
	if len(urls) == 0 {
		return
	}

	o.cycle(o.ctx, urls)
}

// RunNow triggers one manual cycle over the tracked set. The cycle runs in
// the background; only the RUNNING check is synchronous. Manual runs do not
// move next_run.
func (o *Orchestrator) RunNow() error {
	if !o.tryBegin() {
		return ErrCycleInProgress
	}

	go func() {
		defer o.finish(nil)

		urls, err := o.tracker.TrackedURLs(o.ctx)
		if err != nil {
			o.logger.Error().Err(err).Msg("failed to load tracked url set")
			return
		}
		o.cycle(o.ctx, urls)
	}()

	return nil
}

// CheckURLs runs one ad-hoc cycle over exactly the given URLs and merges
// them into the tracked set. Returns the records persisted for this call.
func (o *Orchestrator) CheckURLs(ctx context.Context, urls []string) ([]history.CheckRecord, error) {
	if !o.tryBegin() {
		return nil, ErrCycleInProgress
	}
	defer o.finish(nil)

	// detach from the request context: a client disconnect or handler
	// timeout must not turn in-flight probes into spurious DOWN records
	cycleCtx := context.WithoutCancel(ctx)

	if err := o.tracker.AddTracked(cycleCtx, urls...); err != nil {
		// the ad-hoc cycle still runs, the set just misses an update
		o.logger.Error().Err(err).Msg("failed to update tracked url set")
	}

	return o.cycle(cycleCtx, urls), nil
}

// cycle fans probes out under the concurrency ceiling, waits for the join,
// then persists and evaluates outcomes one by one. Callers must hold the
// RUNNING slot.
func (o *Orchestrator) cycle(ctx context.Context, urls []string) []history.CheckRecord {

	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup

	outcomes := make([]probe.Outcome, len(urls))

	for i, url := range urls {
		sem <- struct{}{}
		wg.Add(1)

		go func(i int, url string) {
			defer func() {
				<-sem
				wg.Done()
			}()

			outcomes[i] = o.prober.Check(ctx, url)
		}(i, url)
	}

	wg.Wait()

	records := make([]history.CheckRecord, 0, len(outcomes))

	for _, out := range outcomes {
		rec := history.CheckRecord{
			URL:          out.URL,
			Status:       out.Status,
			StatusCode:   out.StatusCode,
			ResponseTime: out.ResponseTime,
			CheckedAt:    out.CheckedAt,
		}

		if err := o.store.Append(ctx, &rec); err != nil {
			// fatal for this record only, the cycle moves on
			o.logger.Error().
				Str("url", rec.URL).
				Err(err).
				Msg("failed to persist check record, outcome lost for this cycle")
			continue
		}
		records = append(records, rec)

		if err := o.tracker.StoreLastResult(ctx, rec.URL, string(rec.Status), rec.StatusCode, rec.ResponseTime, rec.CheckedAt); err != nil {
			o.logger.Warn().Str("url", rec.URL).Err(err).Msg("failed to cache latest result")
		}

		o.evaluateTransition(out)
	}

	return records
}

// evaluateTransition updates the last-known status and fires an alert on a
// genuine UP (or unknown) -> DOWN transition. Bookkeeping happens even when
// alerting is disabled.
func (o *Orchestrator) evaluateTransition(out probe.Outcome) {
	o.mu.Lock()
	prev, seen := o.lastStatus[out.URL]
	o.lastStatus[out.URL] = out.Status
	o.mu.Unlock()

	if out.Status != history.StatusDown {
		return
	}
	if seen && prev == history.StatusDown {
		// still down, already alerted on the transition
		return
	}

	o.logger.Info().
		Str("url", out.URL).
		Str("reason", out.Reason).
		Msg("url transitioned to DOWN")

	if !o.alertsOn {
		return
	}

	o.alerts.Enqueue(alert.Event{
		URL:       out.URL,
		Reason:    out.Reason,
		CheckedAt: out.CheckedAt,
	})
}

func (o *Orchestrator) tryBegin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return false
	}
	o.running = true
	return true
}

func (o *Orchestrator) finish(next *time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := time.Now()
	o.lastRun = &now
	if next != nil {
		o.nextRun = next
	}
	o.running = false
}

// Status returns a copy of the run state.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := Status{
		EmailAlerts:   o.alertsOn,
		RunInProgress: o.running,
	}
	if o.lastRun != nil {
		t := *o.lastRun
		st.LastRun = &t
	}
	if o.nextRun != nil {
		t := *o.nextRun
		st.NextRun = &t
	}
	return st
}

// Tracked lists the tracked set together with each URL's cached last result.
func (o *Orchestrator) Tracked(ctx context.Context) ([]TrackedURL, error) {
	urls, err := o.tracker.TrackedURLs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TrackedURL, 0, len(urls))
	for _, url := range urls {
		t := TrackedURL{URL: url}

		cached, err := o.tracker.LastResult(ctx, url)
		if err != nil {
			o.logger.Warn().Str("url", url).Err(err).Msg("failed to read cached result")
		}

		if len(cached) > 0 {
			t.LastStatus = cached["status"]
			if raw, ok := cached["status_code"]; ok {
				if code, err := strconv.Atoi(raw); err == nil {
					t.StatusCode = &code
				}
			}
			if raw, ok := cached["response_time"]; ok {
				if rt, err := strconv.ParseFloat(raw, 64); err == nil {
					t.ResponseTime = &rt
				}
			}
			if raw, ok := cached["checked_at"]; ok {
				if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
					at := time.Unix(unix, 0).UTC()
					t.CheckedAt = &at
				}
			}
		}

		out = append(out, t)
	}

	return out, nil
}
