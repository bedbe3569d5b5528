package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ProjectStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level, and failures
// other than a missing project at warn level.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ProjectStore) ports.ProjectStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(op, projectID string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if projectID != "" {
		attrs = append(attrs, "project_id", projectID)
	}
	if outcome(err) == "error" {
		m.logger.Warn("store call failed", append(attrs, "err", err)...)
		return
	}
	m.logger.Debug("store call", append(attrs, "outcome", outcome(err))...)
}

func (m *loggingMiddleware) Save(ctx context.Context, project *domain.Project) error {
	start := time.Now()
	err := m.next.Save(ctx, project)
	m.log("save", project.ID, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	start := time.Now()
	project, err := m.next.Load(ctx, projectID)
	m.log("load", projectID, start, err)
	return project, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, projectID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, projectID)
	m.log("delete", projectID, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log("list", "", start, err)
	return ids, err
}
