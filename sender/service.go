package sender

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 * Holds no per-delivery state, so it is safe for concurrent reuse across
 * many simultaneous deliveries
 */

const (
	// DefaultTimeout bounds the HTTP call when no timeout is configured.
	DefaultTimeout = 2 * time.Minute

	// timeoutContent is the recorded response content for a timed-out call.
	timeoutContent = "Request Timeout"

	// maxResponseBytes bounds how much of the endpoint's response body is
	// recorded on the work item.
	maxResponseBytes = 1 << 20
)

// UseCase defines the delivery operations exposed to callers.
type UseCase interface {
	// Send performs one delivery attempt to completion on the calling
	// goroutine. Returns true iff the endpoint answered with a 2xx status.
	Send(ctx context.Context, input Input) bool

	// SendAsync performs the same delivery on its own goroutine; the result
	// is delivered on the returned channel. Validation, signing, and
	// bookkeeping are identical to Send.
	SendAsync(ctx context.Context, input Input) <-chan bool
}

// Recorder observes delivery outcomes. Implemented by the metrics package;
// the no-op default keeps the service usable without instrumentation.
type Recorder interface {
	RecordDelivery(event string, statusCode int, success bool, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordDelivery(string, int, bool, time.Duration) {}

type Service struct {
	Tracker  Tracker
	Recorder Recorder

	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewService creates a new delivery service with dependency injection.
// A nil tracker means no persistence is configured and the explicit
// NoopTracker variant is used; a nil logger falls back to slog.Default.
func NewService(tracker Tracker, timeout time.Duration, logger *slog.Logger) *Service {
	if tracker == nil {
		tracker = NewNoopTracker()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Tracker:  tracker,
		Recorder: nopRecorder{},
		client:   &http.Client{},
		timeout:  timeout,
		logger:   logger,
	}
}

// Send performs one delivery attempt and reports success as a boolean.
// Every failure path (validation, persistence, header merge, transport) is
// logged and collapsed to false; no error ever leaks past this boundary.
func (s *Service) Send(ctx context.Context, input Input) bool {
	ok, err := s.deliver(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "webhook delivery failed",
			slog.String("webhook_id", input.WebhookID.String()),
			slog.String("subscription_id", input.SubscriptionID.String()),
			slog.String("event", input.Event),
			slog.Any("error", err),
		)
		return false
	}
	return ok
}

// SendAsync runs the same pipeline on its own goroutine.
func (s *Service) SendAsync(ctx context.Context, input Input) <-chan bool {
	result := make(chan bool, 1)
	go func() {
		result <- s.Send(ctx, input)
	}()
	return result
}

/* deliver drives a single attempt through its full lifecycle:
 * validate -> insert work item -> build and sign body -> HTTP call ->
 * record outcome. The work item is persisted before any network I/O and
 * updated exactly once afterwards
 */
func (s *Service) deliver(ctx context.Context, input Input) (bool, error) {
	if input.WebhookID == uuid.Nil {
		return false, ErrMissingWebhookID
	}
	if input.SubscriptionID == uuid.Nil {
		return false, ErrMissingSubscriptionID
	}

	now := time.Now()
	id, err := s.Tracker.Insert(ctx, WorkItem{
		ID:             uuid.New().String(),
		WebhookID:      input.WebhookID,
		SubscriptionID: input.SubscriptionID,
		TenantID:       input.TenantID,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return false, fmt.Errorf("inserting work item: %w", err)
	}

	payload, err := s.buildPayload(ctx, input)
	if err != nil {
		return false, err
	}

	statusCode, content, err := s.post(ctx, input, payload)
	if err != nil {
		return false, err
	}

	if err := s.record(ctx, input.TenantID, id, statusCode, content); err != nil {
		return false, err
	}

	success := statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
	s.logger.InfoContext(ctx, "webhook delivery attempt completed",
		slog.String("work_item_id", id),
		slog.String("event", input.Event),
		slog.Int("status_code", statusCode),
		slog.Bool("success", success),
	)
	return success, nil
}

// buildPayload serializes the wire body with the next attempt number.
func (s *Service) buildPayload(ctx context.Context, input Input) ([]byte, error) {
	count, err := s.Tracker.CountAttempts(ctx, input.TenantID, input.WebhookID, input.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("counting attempts: %w", err)
	}

	body, err := NewBody(input.Event, input.Data, count+1)
	if err != nil {
		return nil, fmt.Errorf("building body: %w", err)
	}

	return body.Bytes()
}

// post issues the HTTP call under the configured timeout. Deadline expiry is
// a completed attempt with a synthesized 408 outcome, not an error.
func (s *Service) post(ctx context.Context, input Input, payload []byte) (int, string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := buildRequest(callCtx, input, payload)
	if err != nil {
		return 0, "", err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			s.Recorder.RecordDelivery(input.Event, http.StatusRequestTimeout, false, time.Since(start))
			return http.StatusRequestTimeout, timeoutContent, nil
		}
		return 0, "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, "", fmt.Errorf("reading response: %w", err)
	}

	success := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	s.Recorder.RecordDelivery(input.Event, resp.StatusCode, success, time.Since(start))

	return resp.StatusCode, string(content), nil
}

// record re-fetches the work item by tenant and id and persists the outcome.
// The in-memory instance from the insert is deliberately not reused so the
// store's own invariants (timestamps, versioning) are respected.
func (s *Service) record(ctx context.Context, tenantID *uuid.UUID, id string, statusCode int, content string) error {
	item, err := s.Tracker.Get(ctx, tenantID, id)
	if err != nil {
		return fmt.Errorf("fetching work item: %w", err)
	}

	item.ResponseStatusCode = statusCode
	item.ResponseContent = content
	item.UpdatedAt = time.Now()

	if err := s.Tracker.Update(ctx, item); err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}

	return nil
}

// isTimeout reports whether the transport error was a deadline expiry.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
