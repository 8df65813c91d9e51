package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Signups         prometheus.Counter
	Logins          prometheus.Counter
	LoginFailures   prometheus.Counter
	TokenRefreshes  prometheus.Counter
	RefreshFailures prometheus.Counter
	AccountDeletes  prometheus.Counter
	UpstreamErrors  *prometheus.CounterVec
}

// New creates and registers all metrics on the given registerer. Production
// passes prometheus.DefaultRegisterer; tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Signups: factory.NewCounter(prometheus.CounterOpts{
			Name: "sessiongate_signups_total",
			Help: "Total number of signup requests accepted by the identity provider",
		}),
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Name: "sessiongate_logins_total",
			Help: "Total number of successful logins",
		}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "sessiongate_login_failures_total",
			Help: "Total number of rejected logins",
		}),
		TokenRefreshes: factory.NewCounter(prometheus.CounterOpts{
			Name: "sessiongate_token_refreshes_total",
			Help: "Total number of successful access token refreshes",
		}),
		RefreshFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "sessiongate_refresh_failures_total",
			Help: "Total number of failed access token refreshes",
		}),
		AccountDeletes: factory.NewCounter(prometheus.CounterOpts{
			Name: "sessiongate_account_deletions_total",
			Help: "Total number of deleted accounts",
		}),
		UpstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sessiongate_upstream_errors_total",
			Help: "Total number of vendor API call failures",
		}, []string{"vendor"}),
	}
}
