package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Roster subscription metrics.
var (
	RosterObservers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rosterhub_roster_observers",
		Help: "Number of currently registered roster observers.",
	})
	RosterPushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rosterhub_roster_pushes_total",
		Help: "Roster snapshots delivered to observers.",
	})
	RosterErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rosterhub_roster_errors_total",
		Help: "Roster subscription failures.",
	})
)

// Local cache metrics.
var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rosterhub_cache_hits_total",
		Help: "Local cache hits by key namespace.",
	}, []string{"key"})
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rosterhub_cache_misses_total",
		Help: "Local cache misses by key namespace.",
	}, []string{"key"})
)

// Admin mutation metrics.
var AdminActions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rosterhub_admin_actions_total",
	Help: "Admin mutations applied, by action type.",
}, []string{"action"})
