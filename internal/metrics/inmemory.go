package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// InMemory is a Recorder backed by atomic counters. It is the default
// recorder and feeds the metrics endpoint.
type InMemory struct {
	usersRegistered       atomic.Int64
	doctorProfilesDerived atomic.Int64

	loginSuccesses      atomic.Int64
	loginFailures       atomic.Int64
	tokensRejected      atomic.Int64
	identityCacheHits   atomic.Int64
	identityCacheMisses atomic.Int64

	auditBatches atomic.Int64
	auditQueue   atomic.Int64

	mu             sync.Mutex
	auditPublished map[string]int64
	auditProcessed map[string]int64
}

// NewInMemory creates an in-memory Recorder.
func NewInMemory() *InMemory {
	return &InMemory{
		auditPublished: make(map[string]int64),
		auditProcessed: make(map[string]int64),
	}
}

func (m *InMemory) IncUserRegistered()       { m.usersRegistered.Add(1) }
func (m *InMemory) IncDoctorProfileDerived() { m.doctorProfilesDerived.Add(1) }

func (m *InMemory) IncLoginSuccess()        { m.loginSuccesses.Add(1) }
func (m *InMemory) IncLoginFailure()        { m.loginFailures.Add(1) }
func (m *InMemory) IncTokenRejected()       { m.tokensRejected.Add(1) }
func (m *InMemory) IncIdentityCacheHit()    { m.identityCacheHits.Add(1) }
func (m *InMemory) IncIdentityCacheMiss()   { m.identityCacheMisses.Add(1) }

func (m *InMemory) IncAuditEventPublished(status string) {
	m.mu.Lock()
	m.auditPublished[status]++
	m.mu.Unlock()
}

func (m *InMemory) IncAuditEventProcessed(status string) {
	m.mu.Lock()
	m.auditProcessed[status]++
	m.mu.Unlock()
}

func (m *InMemory) ObserveAuditBatchSize(size int) { m.auditBatches.Add(1) }

func (m *InMemory) ObserveAuditBatchDuration(d time.Duration) {}

func (m *InMemory) SetAuditQueueDepth(depth int64) { m.auditQueue.Store(depth) }

// Snapshot returns a copy of all counters.
func (m *InMemory) Snapshot() Snapshot {
	m.mu.Lock()
	published := make(map[string]int64, len(m.auditPublished))
	for k, v := range m.auditPublished {
		published[k] = v
	}
	processed := make(map[string]int64, len(m.auditProcessed))
	for k, v := range m.auditProcessed {
		processed[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		UsersRegistered:       m.usersRegistered.Load(),
		DoctorProfilesDerived: m.doctorProfilesDerived.Load(),
		LoginSuccesses:        m.loginSuccesses.Load(),
		LoginFailures:         m.loginFailures.Load(),
		TokensRejected:        m.tokensRejected.Load(),
		IdentityCacheHits:     m.identityCacheHits.Load(),
		IdentityCacheMisses:   m.identityCacheMisses.Load(),
		AuditPublished:        published,
		AuditProcessed:        processed,
		AuditBatches:          m.auditBatches.Load(),
		AuditQueue:            m.auditQueue.Load(),
	}
}
