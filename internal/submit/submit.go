// Package submit hands a validated qualifications snapshot to a transport.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/credform/internal/qualification"
)

// Envelope is the payload sent for one submission.
type Envelope struct {
	ID          uuid.UUID             `json:"id"`
	SubmittedAt time.Time             `json:"submittedAt"`
	Entries     []qualification.Entry `json:"entries"`
}

// NewEnvelope wraps snap with a fresh submission id.
func NewEnvelope(snap qualification.Snapshot, now time.Time) Envelope {
	return Envelope{
		ID:          uuid.New(),
		SubmittedAt: now.UTC(),
		Entries:     snap.Entries,
	}
}

// Transport delivers envelopes.
type Transport interface {
	Send(ctx context.Context, env Envelope) error
}

// WriterTransport writes each envelope as indented JSON.
type WriterTransport struct {
	W io.Writer
}

func (t WriterTransport) Send(_ context.Context, env Envelope) error {
	enc := json.NewEncoder(t.W)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("write submission: %w", err)
	}
	return nil
}

// Recorder keeps the most recent envelope in memory. It is used while the
// terminal UI owns stdout; the caller prints the envelope after the UI exits.
type Recorder struct {
	mu   sync.Mutex
	last *Envelope
}

func (r *Recorder) Send(_ context.Context, env Envelope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = &env
	return nil
}

// Last returns the most recently recorded envelope.
func (r *Recorder) Last() (Envelope, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return Envelope{}, false
	}
	return *r.last, true
}

// Webhook POSTs each envelope as JSON to URL.
type Webhook struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

// NewWebhook returns a Webhook with a client bounded by timeout.
func NewWebhook(url string, timeout time.Duration, logger *slog.Logger) *Webhook {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

func (w *Webhook) Send(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", env.ID.String())

	start := time.Now()
	resp, err := w.Client.Do(req)
	if err != nil {
		w.Logger.Warn("submission webhook failed", "submission", env.ID, "error", err)
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	w.Logger.Info("submission webhook",
		"submission", env.ID,
		"status", resp.StatusCode,
		"entries", len(env.Entries),
		"latency_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
