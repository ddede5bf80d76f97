// Package metrics defines and registers the custom Prometheus metrics for the
// product catalog API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// CategoriesMutatedTotal counts category writes.
// Label:
//   - operation: "create", "update", or "delete"
var CategoriesMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "categories_mutated_total",
		Help:      "Total number of category mutations, by operation.",
	},
	[]string{"operation"},
)

// ProductsMutatedTotal counts product writes.
// Label:
//   - operation: "create", "update", or "delete"
var ProductsMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_mutated_total",
		Help:      "Total number of product mutations, by operation.",
	},
	[]string{"operation"},
)

// LoginsTotal counts authentication attempts.
// Labels:
//   - role: "admin" or "user"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// RegistrationsTotal counts successful account registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)
