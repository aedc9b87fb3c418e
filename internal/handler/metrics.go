package handler

import (
	"fmt"
	"net/http"

	"github.com/newsdesk/newsdesk/internal/metrics"
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

	writeMetric(w, "newsdesk_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "newsdesk_signins_total{status=\"success\"} %d\n", snap.SignInSuccesses)
	writeMetric(w, "newsdesk_signins_total{status=\"failure\"} %d\n", snap.SignInFailures)
	writeMetric(w, "newsdesk_auth_rejections_total %d\n", snap.AuthRejections)
	writeMetric(w, "newsdesk_signin_duration_seconds_count %d\n", snap.SignInDurationCount)
	writeMetric(w, "newsdesk_signin_duration_seconds_sum %.6f\n", float64(snap.SignInDurationTotalNs)/1e9)

	writeMetric(w, "newsdesk_news_created_total %d\n", snap.NewsCreated)
	writeMetric(w, "newsdesk_news_updated_total %d\n", snap.NewsUpdated)
	writeMetric(w, "newsdesk_news_deleted_total %d\n", snap.NewsDeleted)

	writeMetric(w, "newsdesk_views_recorded_total{status=\"success\"} %d\n", snap.ViewsRecorded)
	writeMetric(w, "newsdesk_views_recorded_total{status=\"dropped\"} %d\n", snap.ViewsDropped)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
