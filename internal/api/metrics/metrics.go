// Package metrics defines all custom Prometheus metrics for the recovery
// platform API. It is the single source of truth for metric names, labels,
// and help strings; metrics register themselves with the default registry
// via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recovery"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthzDecisionsTotal counts access-control decisions by the staff gate.
// Labels:
//   - capability: the required capability (e.g. "write")
//   - outcome: "allow" or "deny"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of capability-gate decisions, by capability and outcome.",
	},
	[]string{"capability", "outcome"},
)

// ClaimsStaleTotal counts requests presenting a credential whose claims
// version is behind the current record.
var ClaimsStaleTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_stale_total",
		Help:      "Total number of requests carrying stale claims.",
	},
)

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentsCreatedTotal counts new ledger entries by initial status.
var EnrollmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_created_total",
		Help:      "Total number of enrollments created, by initial status.",
	},
	[]string{"status"},
)

// JoinRequestDecisionsTotal counts join-request decisions.
// Label:
//   - decision: "approved" or "denied"
var JoinRequestDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "join_request_decisions_total",
		Help:      "Total number of join-request decisions, by decision.",
	},
	[]string{"decision"},
)

// ── Feed metrics ──────────────────────────────────────────────────────────────

// FeedFanoutTenants measures how many tenant partitions one feed request
// reads in parallel (after the configured cap).
var FeedFanoutTenants = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feed_fanout_tenants",
		Help:      "Number of tenant partitions read per cross-tenant feed request.",
		Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16},
	},
)
