// Package metrics defines the custom Prometheus metrics of the course API.
// HTTP request metrics come from the echoprometheus middleware; the counters
// here track domain outcomes and are registered on the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coursemarket"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts created accounts.
// Label:
//   - role: "student" or "instructor"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered user accounts, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Catalogue metrics ─────────────────────────────────────────────────────────

// CourseMutationsTotal counts successful course writes.
// Label:
//   - operation: "create", "update" or "delete"
var CourseMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "course_mutations_total",
		Help:      "Total number of successful course writes, by operation.",
	},
	[]string{"operation"},
)

// ImagesUploadedTotal counts accepted image uploads by form field.
var ImagesUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of course images accepted, by form field.",
	},
	[]string{"field"},
)

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentsTotal counts enrollment attempts.
// Label:
//   - result: "enrolled", "already_enrolled" or "rejected"
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of enrollment attempts, by result.",
	},
	[]string{"result"},
)
