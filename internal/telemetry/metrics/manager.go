package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterSessionsStarted   prometheus.Counter
	CounterSessionsSaved     prometheus.Counter
	CounterSessionsDiscarded prometheus.Counter
	CounterRepetitions       prometheus.Counter
	CounterStorageErrors     *prometheus.CounterVec
	CounterCacheLookups      *prometheus.CounterVec

	// gauges
	GaugeSessionActive prometheus.Gauge

	// histograms
	HistSessionDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("stairstats", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("stairstats", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterSessionsStarted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_started",
		Help:      "The total number of started stair sessions",
	})
	counterSessionsSaved := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_saved",
		Help:      "The total number of persisted stair sessions",
	})
	counterSessionsDiscarded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_discarded",
		Help:      "The total number of stair sessions ended without saving",
	})
	counterRepetitions := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "repetitions",
		Help:      "The total number of recorded staircase round trips",
	})
	counterStorageErrors := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "storage_errors",
		Help:      "The total number of failed session store operations",
	}, []string{"op"})
	counterCacheLookups := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "cache_lookups",
		Help:      "Session store query cache lookups by result",
	}, []string{"result"})

	gaugeSessionActive := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "session_active",
		Help:      "1 while a session is being recorded, 0 otherwise",
	})

	histSessionDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "session_duration_seconds",
		Help:      "Duration of saved stair sessions in seconds",
		Buckets:   []float64{60, 180, 300, 600, 900, 1200, 1800, 2700, 3600, 5400, 7200},
	})

	return &Manager{
		CounterSessionsStarted:   counterSessionsStarted,
		CounterSessionsSaved:     counterSessionsSaved,
		CounterSessionsDiscarded: counterSessionsDiscarded,
		CounterRepetitions:       counterRepetitions,
		CounterStorageErrors:     counterStorageErrors,
		CounterCacheLookups:      counterCacheLookups,
		GaugeSessionActive:       gaugeSessionActive,
		HistSessionDuration:      histSessionDuration,
	}
}
