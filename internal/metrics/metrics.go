// Package metrics defines the application's instrumentation interface.
package metrics

import "time"

// Recorder records application metrics. Implementations must be safe
// for concurrent use.
type Recorder interface {
	// Account lifecycle
	IncUserRegistered()
	IncDoctorProfileDerived()

	// Authentication
	IncLoginSuccess()
	IncLoginFailure()
	IncTokenRejected()
	IncIdentityCacheHit()
	IncIdentityCacheMiss()

	// Audit pipeline
	IncAuditEventPublished(status string)
	IncAuditEventProcessed(status string)
	ObserveAuditBatchSize(size int)
	ObserveAuditBatchDuration(d time.Duration)
	SetAuditQueueDepth(depth int64)
}

// Snapshot is a point-in-time view of the recorded counters,
// used by the metrics endpoint and by tests.
type Snapshot struct {
	UsersRegistered       int64
	DoctorProfilesDerived int64

	LoginSuccesses      int64
	LoginFailures       int64
	TokensRejected      int64
	IdentityCacheHits   int64
	IdentityCacheMisses int64

	AuditPublished map[string]int64
	AuditProcessed map[string]int64
	AuditBatches   int64
	AuditQueue     int64
}

// Snapshotter is implemented by recorders that can expose their counters.
type Snapshotter interface {
	Snapshot() Snapshot
}
