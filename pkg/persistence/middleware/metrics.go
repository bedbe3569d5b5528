package middleware

import (
	"context"
	"time"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

type metricsMiddleware struct {
	next     ports.ProjectStore
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware records the duration of each store call, labelled by
// operation and outcome ("ok", "not_found" or "error"). The histogram is
// registered with reg.
func NewMetricsMiddleware(reg prometheus.Registerer) (Middleware, error) {
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fxforge",
			Name:      "store_operation_duration_seconds",
			Help:      "Duration of project store operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)
	if err := reg.Register(duration); err != nil {
		return nil, err
	}
	return func(next ports.ProjectStore) ports.ProjectStore {
		return &metricsMiddleware{next: next, duration: duration}
	}, nil
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	m.duration.WithLabelValues(op, outcome(err)).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Save(ctx context.Context, project *domain.Project) error {
	start := time.Now()
	err := m.next.Save(ctx, project)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	start := time.Now()
	project, err := m.next.Load(ctx, projectID)
	m.observe("load", start, err)
	return project, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, projectID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, projectID)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", start, err)
	return ids, err
}
