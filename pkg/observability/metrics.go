package observability

import (
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "fxforge"

// Metrics holds the collectors fed by lifecycle hooks.
type Metrics struct {
	LayersBuilt          *prometheus.CounterVec
	LayerStates          *prometheus.HistogramVec
	ControlsInserted     prometheus.Counter
	DuplicatesSuppressed prometheus.Counter
	PagesAllocated       prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		LayersBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "layers_built_total",
				Help:      "Total number of layer builds, by variant and outcome",
			},
			[]string{"variant", "outcome"},
		),
		LayerStates: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "layer_states",
				Help:      "Number of states per built layer",
				Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
			},
			[]string{"variant"},
		),
		ControlsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "menu_controls_inserted_total",
			Help:      "Total number of controls inserted into menus",
		}),
		DuplicatesSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "menu_duplicates_suppressed_total",
			Help:      "Total number of control insertions skipped as duplicates",
		}),
		PagesAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "menu_pages_allocated_total",
			Help:      "Total number of overflow pages allocated",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.LayersBuilt,
		m.LayerStates,
		m.ControlsInserted,
		m.DuplicatesSuppressed,
		m.PagesAllocated,
	}
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLayerBuilt: func(e *domain.LayerEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.LayersBuilt.WithLabelValues(e.Variant, outcome).Inc()
			m.LayerStates.WithLabelValues(e.Variant).Observe(float64(e.States))
		},
		OnControlInserted:     func(*domain.MenuEvent) { m.ControlsInserted.Inc() },
		OnDuplicateSuppressed: func(*domain.MenuEvent) { m.DuplicatesSuppressed.Inc() },
		OnPageAllocated:       func(*domain.MenuEvent) { m.PagesAllocated.Inc() },
	}
}
