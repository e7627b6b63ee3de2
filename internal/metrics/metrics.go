// Package metrics holds Prometheus instruments that are used across the
// application.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LoginsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Cumulative number of successful logins.",
		})

	LoginFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_login_failures_total",
			Help: "Cumulative number of rejected or failed login attempts.",
		})

	LogoutsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_logouts_total",
			Help: "Cumulative number of logouts, explicit or expiry-driven.",
		})

	TokenValidationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_token_validations_total",
			Help: "Cumulative number of validation round-trips issued.",
		})

	SessionExpiriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_session_expiries_total",
			Help: "Cumulative number of sessions the server declared invalid.",
		})

	GuardRedirectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guard_redirects_total",
			Help: "Cumulative number of guard redirects to the login page.",
		})

	GuardPassesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "guard_passes_total",
			Help: "Cumulative number of verified protected-page renders.",
		})
)

func init() {
	prometheus.MustRegister(
		LoginsTotal,
		LoginFailuresTotal,
		LogoutsTotal,
		TokenValidationsTotal,
		SessionExpiriesTotal,
		GuardRedirectsTotal,
		GuardPassesTotal,
	)
}
