package handler

import (
	"fmt"
	"net/http"

	"github.com/clinicore/clinicore/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "clinicore_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "clinicore_doctor_profiles_derived_total %d\n", snap.DoctorProfilesDerived)

	writeMetric(w, "clinicore_logins_total{result=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "clinicore_logins_total{result=\"failure\"} %d\n", snap.LoginFailures)
	writeMetric(w, "clinicore_tokens_rejected_total %d\n", snap.TokensRejected)

	writeMetric(w, "clinicore_identity_cache_hits_total %d\n", snap.IdentityCacheHits)
	writeMetric(w, "clinicore_identity_cache_misses_total %d\n", snap.IdentityCacheMisses)

	for _, status := range []string{"success", "dropped"} {
		writeMetric(w, "clinicore_audit_events_published_total{status=%q} %d\n", status, snap.AuditPublished[status])
	}
	for _, status := range []string{"success", "failed", "dead_lettered"} {
		writeMetric(w, "clinicore_audit_events_processed_total{status=%q} %d\n", status, snap.AuditProcessed[status])
	}

	writeMetric(w, "clinicore_audit_batches_total %d\n", snap.AuditBatches)
	writeMetric(w, "clinicore_audit_queue_depth %d\n", snap.AuditQueue)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
