package handlers

import "expvar"

// Counters published under "auth" on /debug/vars.
var authMetrics = expvar.NewMap("auth")

const (
	MetricRegistrations      = "registrations"
	MetricRegistrationErrors = "registration_failures"
	MetricLogins             = "logins"
	MetricLoginFailures      = "login_failures"
	MetricTokenRejections    = "token_rejections"
	MetricHookFailures       = "hook_failures"
)

func incr(name string) { authMetrics.Add(name, 1) }

// CountTokenRejection is called by the identity guard.
func CountTokenRejection() { incr(MetricTokenRejections) }

// MetricValue reads a counter; zero when it was never incremented.
func MetricValue(name string) int64 {
	if v, ok := authMetrics.Get(name).(*expvar.Int); ok {
		return v.Value()
	}
	return 0
}
