// Package metrics defines the custom Prometheus metrics of the platform API.
// It is the single source of truth for metric names, labels, and help strings.
// promauto registers everything with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "siganext"

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRenewedTotal counts silent session-token renewals (edge gate and
// explicit refresh endpoint combined).
var TokensRenewedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_renewed_total",
		Help:      "Total number of session tokens re-signed with a fresh expiry.",
	},
)

// RateLimitedTotal counts requests rejected by the fixed-window limiter.
// Label:
//   - route: the throttled route group (e.g. "login", "register")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"route"},
)

// OnboardingsTotal counts onboarding attempts.
// Label:
//   - result: "success", "rejected" (invite invalid) or "failure" (transaction)
var OnboardingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "onboardings_total",
		Help:      "Total number of athlete onboarding attempts, by result.",
	},
	[]string{"result"},
)

// InvitesIssuedTotal counts invites created by trainers.
var InvitesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invites_issued_total",
		Help:      "Total number of athlete invites issued.",
	},
)

// AuditEventsTotal counts audit entries by write outcome.
// Label:
//   - result: "written", "failed" or "dropped" (queue full)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit entries, by write outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks entries waiting in the async audit writer.
var AuditQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in the writer queue.",
	},
)
