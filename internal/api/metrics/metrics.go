// Package metrics defines and registers all custom Prometheus metrics for the
// HydrAI telemetry API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hydrai"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRejectedTotal counts bearer tokens rejected by the auth middleware.
// Label:
//   - reason: "missing", "malformed", "invalid", or "unknown_subject"
var TokensRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_rejected_total",
		Help:      "Total number of rejected session tokens, by reason.",
	},
	[]string{"reason"},
)

// ── Telemetry metrics ─────────────────────────────────────────────────────────

// MeasurementsIngestedTotal counts measurements persisted by the dispatcher workers.
var MeasurementsIngestedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "measurements_ingested_total",
		Help:      "Total number of flow-meter measurements successfully persisted.",
	},
)

// MeasurementsErrorsTotal counts measurements that failed ingestion.
// Label:
//   - reason: short description of the failure (e.g. "ingest_failed")
var MeasurementsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "measurements_errors_total",
		Help:      "Total number of flow-meter measurements that failed ingestion.",
	},
	[]string{"reason"},
)

// AnalysesTotal counts analysis requests.
// Label:
//   - result: "cache_hit" is folded into "success"; "error" covers generator failures
var AnalysesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total number of consumption analyses requested, by result.",
	},
	[]string{"result"},
)

// AnalysisDuration measures how long an analysis request takes end-to-end,
// including the external generator call on cache misses.
var AnalysisDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of analysis requests from handler entry to response.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
