package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinicore/clinicore/internal/model"
)

// AuditRepository provides database access for audit events.
type AuditRepository struct {
	repo *Repository
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(repo *Repository) *AuditRepository {
	return &AuditRepository{repo: repo}
}

// BulkInsert inserts multiple audit events with idempotency via ON CONFLICT DO NOTHING.
// The event_id column carries the Redis stream ID, so redelivered batches
// are inserted at most once.
func (r *AuditRepository) BulkInsert(ctx context.Context, events []*model.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	query := `
		INSERT INTO audit_events (
			id, event_id, kind, actor, entity_id, detail, occurred_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	for _, event := range events {
		batch.Queue(query,
			event.ID,
			event.EventID,
			event.Kind,
			nullableString(event.Actor),
			nullableString(event.EntityID),
			nullableString(event.Detail),
			event.OccurredAt,
		)
	}

	results := r.repo.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(events); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert event %d: %w", i, err)
		}
	}

	return nil
}

// ListRecent retrieves the most recent audit events, newest first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*model.AuditEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, event_id, kind, COALESCE(actor, ''), COALESCE(entity_id, ''),
			COALESCE(detail, ''), occurred_at, created_at
		FROM audit_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`

	rows, err := r.repo.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []*model.AuditEvent
	for rows.Next() {
		var e model.AuditEvent
		if err := rows.Scan(
			&e.ID,
			&e.EventID,
			&e.Kind,
			&e.Actor,
			&e.EntityID,
			&e.Detail,
			&e.OccurredAt,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		events = append(events, &e)
	}

	return events, rows.Err()
}
