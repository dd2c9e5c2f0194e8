package alert

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeMailer) all() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMail, len(f.sent))
	copy(out, f.sent)
	return out
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, body)
	return nil
}

func newTestService(mailer Mailer, publisher Publisher) *Service {
	logger := zerolog.Nop()
	return NewService(2, make(chan Event, 16), mailer, publisher, "ops@example.com", &logger)
}

func TestDeliverFormatsAlertMail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestService(mailer, nil)

	svc.Start()
	svc.Enqueue(Event{
		URL:       "https://example.com",
		Reason:    "TIMEOUT",
		CheckedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	svc.Stop()

	sent := mailer.all()
	require.Len(t, sent, 1)
	require.Equal(t, "ops@example.com", sent[0].to)
	require.Equal(t, "ALERT: https://example.com is DOWN", sent[0].subject)
	require.Contains(t, sent[0].body, "https://example.com is DOWN as of 2025-06-01T12:00:00Z")
	require.Contains(t, sent[0].body, "TIMEOUT")
}

func TestStopDrainsQueue(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestService(mailer, nil)

	svc.Start()
	for i := 0; i < 10; i++ {
		svc.Enqueue(Event{URL: "https://example.com", CheckedAt: time.Now()})
	}
	svc.Stop()

	require.Len(t, mailer.all(), 10)
}

func TestMailerFailureDoesNotStopWorkers(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp unavailable")}
	svc := newTestService(mailer, nil)

	svc.Start()
	svc.Enqueue(Event{URL: "https://a.example", CheckedAt: time.Now()})
	svc.Enqueue(Event{URL: "https://b.example", CheckedAt: time.Now()})
	svc.Stop()

	// nothing delivered, nothing panicked
	require.Empty(t, mailer.all())
}

func TestDeliverMirrorsEventToPublisher(t *testing.T) {
	mailer := &fakeMailer{}
	publisher := &fakePublisher{}
	svc := newTestService(mailer, publisher)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Start()
	svc.Enqueue(Event{URL: "https://example.com", Reason: "DNS_FAILURE", CheckedAt: at})
	svc.Stop()

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	require.Len(t, publisher.payloads, 1)

	var got Event
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &got))
	require.Equal(t, "https://example.com", got.URL)
	require.Equal(t, "DNS_FAILURE", got.Reason)
	require.True(t, got.CheckedAt.Equal(at))
}

func TestEnqueueNeverBlocksWhenQueueFull(t *testing.T) {
	mailer := &fakeMailer{}
	logger := zerolog.Nop()
	svc := NewService(1, make(chan Event, 1), mailer, nil, "ops@example.com", &logger)

	// workers not started, so the second event must be dropped, not block
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Enqueue(Event{URL: "https://a.example"})
		svc.Enqueue(Event{URL: "https://b.example"})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}
