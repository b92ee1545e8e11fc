// Package audit provides audit trail capture and processing.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicore/clinicore/internal/metrics"
)

const (
	// StreamKey is the Redis stream for audit events.
	StreamKey = "stream:audit_events"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:audit_events:dlq"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// EventPayload is the compressed event format for the Redis stream.
type EventPayload struct {
	Kind       string `json:"k"`            // event kind
	Actor      string `json:"a,omitempty"`  // user email or ID
	EntityID   string `json:"e,omitempty"`  // affected entity ID
	Detail     string `json:"d,omitempty"`  // free-form detail (truncated)
	OccurredAt int64  `json:"t"`            // Unix milliseconds
}

// ValidateEventPayload checks the minimum shape of a stream payload.
func ValidateEventPayload(p EventPayload) error {
	if p.Kind == "" {
		return errors.New("missing event kind")
	}
	if p.OccurredAt <= 0 {
		return errors.New("missing occurrence timestamp")
	}
	return nil
}

// Publisher enqueues audit events to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new audit event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "audit.publisher"),
		metrics: recorder,
	}
}

// Publish adds an audit event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event EventPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true, // ~MAXLEN for performance
		ID:     "*",  // Auto-generate ID
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()

	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned (fire-and-forget): the audit trail
// must never fail a clinical request.
func (p *Publisher) PublishAsync(event EventPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish audit event",
				"kind", event.Kind,
				"error", err,
			)
			p.metrics.IncAuditEventPublished("dropped")
			return
		}

		p.logger.Debug("audit event published",
			"kind", event.Kind,
			"stream_id", streamID,
		)
		p.metrics.IncAuditEventPublished("success")
	}()
}

// TruncateDetail caps the free-form detail field at 500 chars.
func TruncateDetail(detail string) string {
	if len(detail) > 500 {
		return detail[:500]
	}
	return detail
}
