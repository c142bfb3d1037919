// Package metrics defines and registers the custom Prometheus metrics of the
// CRM portal. Metrics are registered on the default registry at package
// init through promauto; the /metrics route exposes them together with the
// echo HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm_portal"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the CRM REST backend.
// Labels:
//   - operation: facade operation name (e.g. "list_companies", "create_meeting")
//   - code: HTTP status code, or "transport_error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the CRM backend.",
	},
	[]string{"operation", "code"},
)

// BackendRequestDuration measures backend round trips per operation.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of CRM backend requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// GuardDecisionsTotal counts navigation guard outcomes.
// Labels:
//   - outcome: "allow", "redirect_login" or "redirect_home"
//   - kind: "page" or "api"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"outcome", "kind"},
)

// SessionsTotal counts session lifecycle transitions.
// Label:
//   - event: "created" or "destroyed"
var SessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Total number of sessions created and destroyed.",
	},
	[]string{"event"},
)

// IdempotencyTotal counts Idempotency-Key checks.
// Label:
//   - result: "claimed", "duplicate", "released" (the request failed and
//     the key was freed for a retry) or "error" (key store unavailable)
var IdempotencyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_checks_total",
		Help:      "Total number of idempotency key checks, labelled by result.",
	},
	[]string{"result"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityQueueDepth tracks pending events per dispatcher worker.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityErrorsTotal counts activity events that could not be stored.
// Label:
//   - reason: "queue_full", "stopped" (recorded after shutdown) or "insert_failed"
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events dropped or failed.",
	},
	[]string{"reason"},
)
