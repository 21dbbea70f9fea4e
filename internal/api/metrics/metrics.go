// Package metrics defines and registers all custom Prometheus metrics for
// the student portal. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Login metrics ─────────────────────────────────────────────────────────────

// OTPIssuedTotal counts codes issued by the first login phase.
var OTPIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time codes issued.",
	},
)

// LoginFailuresTotal counts rejected login attempts.
// Label:
//   - reason: "unknown_user", "email_mismatch", "invalid_otp", "invalid_password"
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of rejected login attempts, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts finalized login sessions.
var LoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of finalized login sessions.",
	},
)

// ── Signup metrics ────────────────────────────────────────────────────────────

// SignupsTotal counts successfully created student accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of student accounts created.",
	},
)

// ── Access-filter metrics ─────────────────────────────────────────────────────

// AccessDenialsTotal counts stream-mismatch denials issued by the access filter.
// Label:
//   - kind: "category" or "content"
var AccessDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denials_total",
		Help:      "Total number of stream-mismatch denials, by resource kind.",
	},
	[]string{"kind"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsFailedTotal counts outbound messages the notification service
// could not deliver.
// Label:
//   - kind: "otp", "student_welcome", "operator_alert"
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of failed notification deliveries, by kind.",
	},
	[]string{"kind"},
)
