package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/hsm/pkg/domain"
)

const namespace = "hsm"

// Metrics records machine activity as Prometheus collectors.
type Metrics struct {
	transitions *prometheus.CounterVec
	enters      *prometheus.CounterVec
	exits       *prometheus.CounterVec
	runaways    prometheus.Counter
	scans       prometheus.Histogram
	tickSeconds prometheus.Histogram
	depth       prometheus.Gauge
}

// NewMetrics creates the collectors for one machine and registers them with reg.
// A nil reg uses a private registry.
func NewMetrics(reg prometheus.Registerer, machine string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	labels := prometheus.Labels{"machine": machine}

	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "transitions_total",
			Help:        "Applied transitions by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		enters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "state_enters_total",
			Help:        "States pushed onto the stack",
			ConstLabels: labels,
		}, []string{"state"}),
		exits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "state_exits_total",
			Help:        "States popped from the stack",
			ConstLabels: labels,
		}, []string{"state"}),
		runaways: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "runaway_ticks_total",
			Help:        "Ticks abandoned because the stack did not settle",
			ConstLabels: labels,
		}),
		scans: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "tick_scans",
			Help:        "Resolution scans performed per tick",
			Buckets:     []float64{1, 2, 3, 5, 8, 13, 25, 50, 100},
			ConstLabels: labels,
		}),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "tick_duration_seconds",
			Help:        "Wall-clock duration of a tick",
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 8),
			ConstLabels: labels,
		}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "stack_depth",
			Help:        "Number of active states after the last tick",
			ConstLabels: labels,
		}),
	}

	for _, c := range []prometheus.Collector{m.transitions, m.enters, m.exits, m.runaways, m.scans, m.tickSeconds, m.depth} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics for machine %q: %w", machine, err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			m.enters.WithLabelValues(string(e.StateID)).Inc()
		},
		OnStateExit: func(e *domain.StateEvent) {
			m.exits.WithLabelValues(string(e.StateID)).Inc()
		},
		OnTransition: func(e *domain.TransitionEvent) {
			m.transitions.WithLabelValues(e.Kind.String()).Inc()
		},
		OnTick: func(e *domain.TickEvent) {
			m.scans.Observe(float64(e.Scans))
			m.tickSeconds.Observe(e.Duration.Seconds())
			m.depth.Set(float64(e.Depth))
			if !e.Settled {
				m.runaways.Inc()
			}
		},
	}
}
