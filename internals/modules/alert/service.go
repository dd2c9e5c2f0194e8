package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Mailer sends one alert mail. Delivery failure is the notifier's own
// problem, it never propagates into a check cycle.
type Mailer interface {
	Send(to, subject, body string) error
}

// Publisher mirrors alert events onto an external broker. Optional.
type Publisher interface {
	Publish(ctx context.Context, body []byte) error
}

type Service struct {
	// lifecycle
	workerCount int
	workerWG    sync.WaitGroup

	// channels
	events chan Event

	// delivery
	mailer    Mailer
	publisher Publisher // nil when rabbitmq is disabled
	recipient string

	// misc
	logger *zerolog.Logger
}

func NewService(workerCount int, events chan Event, mailer Mailer, publisher Publisher, recipient string, logger *zerolog.Logger) *Service {
	return &Service{
		workerCount: workerCount,
		events:      events,
		mailer:      mailer,
		publisher:   publisher,
		recipient:   recipient,
		logger:      logger,
	}
}

// Start starts the alert workers
func (s *Service) Start() {

	s.workerWG.Add(s.workerCount)

	for range s.workerCount {
		go s.handleEvents()
	}
}

// Enqueue hands an event to the workers without ever blocking the caller.
func (s *Service) Enqueue(e Event) {
	select {
	case s.events <- e:
	default:
		s.logger.Error().
			Str("url", e.URL).
			Msg("alert queue full, dropping alert")
	}
}

// Stop closes the queue and waits for in-flight deliveries to finish.
func (s *Service) Stop() {
	close(s.events)
	s.workerWG.Wait()
}

func (s *Service) handleEvents() {
	defer s.workerWG.Done()

	for e := range s.events {
		s.deliver(e)
	}
}

func (s *Service) deliver(e Event) {
	subject := fmt.Sprintf("ALERT: %s is DOWN", e.URL)
	body := fmt.Sprintf("%s is DOWN as of %s", e.URL, e.CheckedAt.Format(time.RFC3339))
	if e.Reason != "" {
		body = fmt.Sprintf("%s (%s)", body, e.Reason)
	}

	if err := s.mailer.Send(s.recipient, subject, body); err != nil {
		s.logger.Error().
			Str("url", e.URL).
			Err(err).
			Msg("failed to send alert mail")
	}

	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(e)
	if err != nil {
		s.logger.Error().Str("url", e.URL).Err(err).Msg("failed to encode alert event")
		return
	}

	pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, payload); err != nil {
		s.logger.Error().
			Str("url", e.URL).
			Err(err).
			Msg("failed to publish alert event")
	}
}
