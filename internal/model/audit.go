package model

import "time"

// Audit event kinds recorded by the async audit pipeline.
const (
	AuditUserRegistered = "user.registered"
	AuditDoctorDerived  = "doctor.derived"
	AuditLoginSucceeded = "login.succeeded"
	AuditLoginFailed    = "login.failed"
	AuditTokenRejected  = "token.rejected"
	AuditRecordCreated  = "record.created"
	AuditRecordUpdated  = "record.updated"
	AuditRecordDeleted  = "record.deleted"
)

// AuditEvent is one entry in the audit trail.
type AuditEvent struct {
	ID         string    `json:"id"`       // ULID (time-sortable)
	EventID    string    `json:"event_id"` // Idempotency key (Redis stream ID)
	Kind       string    `json:"kind"`
	Actor      string    `json:"actor,omitempty"`     // email of the acting identity
	EntityID   string    `json:"entity_id,omitempty"` // affected record, if any
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"` // DB insertion time
}
