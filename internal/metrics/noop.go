package metrics

import "time"

// Noop is a Recorder that discards all observations. Useful in tests
// and in components constructed without instrumentation.
type Noop struct{}

// NewNoop creates a no-op Recorder.
func NewNoop() *Noop { return &Noop{} }

func (Noop) IncUserRegistered()                   {}
func (Noop) IncDoctorProfileDerived()             {}
func (Noop) IncLoginSuccess()                     {}
func (Noop) IncLoginFailure()                     {}
func (Noop) IncTokenRejected()                    {}
func (Noop) IncIdentityCacheHit()                 {}
func (Noop) IncIdentityCacheMiss()                {}
func (Noop) IncAuditEventPublished(string)        {}
func (Noop) IncAuditEventProcessed(string)        {}
func (Noop) ObserveAuditBatchSize(int)            {}
func (Noop) ObserveAuditBatchDuration(time.Duration) {}
func (Noop) SetAuditQueueDepth(int64)             {}
