// Package metrics defines the custom Prometheus metrics of the election API.
// It is the single source of truth for metric names, labels and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voting"

// ── Vote metrics ──────────────────────────────────────────────────────────────

// VotesCastTotal counts ballots that were stored.
// Label:
//   - period_id: the voting period the ballot belongs to
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of ballots stored, by voting period.",
	},
	[]string{"period_id"},
)

// VoteRejectionsTotal counts ballots refused by the voting rules.
// Label:
//   - reason: "already_voted", "not_live", "not_eligible", "election_closed", "unknown_candidate"
var VoteRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vote_rejections_total",
		Help:      "Total number of rejected ballots, by reason.",
	},
	[]string{"reason"},
)

// ValidationFailuresTotal counts field validation errors returned to clients.
// Label:
//   - code: the validation error code (e.g. "MISSING_FIELD")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of field validation failures, by error code.",
	},
	[]string{"code"},
)

// ResultsPublishedTotal counts successful publish requests. Repeat publishes of
// an already published period are counted too.
var ResultsPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_published_total",
		Help:      "Total number of successful results publish requests.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the records waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts audit records dropped because a worker channel was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit records dropped on a full queue.",
	},
)

// AuditWriteDuration measures how long one audit record takes to persist.
// Label:
//   - result: "ok" or "error"
var AuditWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit record persistence from dequeue to write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
