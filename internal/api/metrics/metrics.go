// Package metrics defines and registers all custom Prometheus metrics for
// the identity service. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto and the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure" (all failure causes share one value;
//     the metric must not leak which check failed any more than the API does)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts bearer token checks at the guard.
// Label:
//   - result: "valid", "expired", "malformed", or "revoked"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts role-check outcomes on protected operations.
// Label:
//   - decision: "allowed" or "denied"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by outcome.",
	},
	[]string{"decision"},
)

// AuditEventsTotal counts audit events successfully persisted.
// Label:
//   - kind: the auth event kind (e.g. "login_succeeded")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events persisted, by kind.",
	},
	[]string{"kind"},
)

// AuditEventsDroppedTotal counts audit events dropped because a worker
// buffer was full. The audit trail is best-effort by design.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to full queues.",
	},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
