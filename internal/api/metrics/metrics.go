// Package metrics defines and registers the custom Prometheus metrics of the
// point-of-sale API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pos"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "unknown_user", "invalid_request" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthorizationDenialsTotal counts requests refused by the authorization policy.
// Label:
//   - route: the matched route path (e.g. "/users/:uid")
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests denied by the authorization policy, by route.",
	},
	[]string{"route"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts accounts created through the API.
// Label:
//   - role: "admin" or "standard"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductWritesTotal counts catalog changes.
// Label:
//   - operation: "create", "update" or "delete"
var ProductWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_writes_total",
		Help:      "Total number of catalog writes, by operation.",
	},
	[]string{"operation"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts create-order requests that returned an order.
// Label:
//   - replayed: "true" when an Idempotency-Key matched an earlier order
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders returned by create, split by idempotent replay.",
	},
	[]string{"replayed"},
)

// OrderStatusChangesTotal counts order updates that set a status, by the
// resulting status.
var OrderStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_changes_total",
		Help:      "Total number of order status changes, by resulting status.",
	},
	[]string{"status"},
)
