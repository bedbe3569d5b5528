package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/internal/logging"
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed project lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serialises access to persisted projects. Every operation on a
// project ID runs under that ID's local mutex and, when configured, a
// distributed lock. Unused mutexes are reclaimed by reference counting.
type Manager struct {
	store ports.ProjectStore
	forge *fxforge.Forge

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithForge sets the Forge used by Apply. Defaults to fxforge.New().
func WithForge(f *fxforge.Forge) Option {
	return func(m *Manager) {
		m.forge = f
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store ports.ProjectStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.forge == nil {
		m.forge = fxforge.New(fxforge.WithLogger(m.logger))
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(projectID) after unlocking.
func (m *Manager) acquire(projectID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[projectID]
	if !exists {
		entry = &lockEntry{}
		m.locks[projectID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(projectID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[projectID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, projectID)
	}
}

// Load retrieves an existing project from the store.
func (m *Manager) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	var project *domain.Project
	err := m.WithLock(ctx, projectID, func(ctx context.Context) error {
		var err error
		project, err = m.store.Load(ctx, projectID)
		return err
	})
	return project, err
}

// loadOrNew must run under the project lock.
func (m *Manager) loadOrNew(ctx context.Context, projectID string) (*domain.Project, bool, error) {
	project, err := m.store.Load(ctx, projectID)
	if err == nil {
		return project, false, nil
	}
	if !errors.Is(err, domain.ErrProjectNotFound) {
		return nil, false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return domain.NewProject(projectID), true, nil
}

// LoadOrCreate loads a project, creating and persisting an empty one if needed.
func (m *Manager) LoadOrCreate(ctx context.Context, projectID string) (*domain.Project, error) {
	var project *domain.Project
	err := m.WithLock(ctx, projectID, func(ctx context.Context) error {
		var created bool
		var err error
		project, created, err = m.loadOrNew(ctx, projectID)
		if err != nil || !created {
			return err
		}
		if err := m.store.Save(ctx, project); err != nil {
			return fmt.Errorf("failed to initialize project: %w", err)
		}
		return nil
	})
	return project, err
}

// Apply runs jobs in order against the stored project (created when missing)
// and saves the result. Work done before a failing job is kept and saved, the
// same way Forge keeps it in memory. It returns one report per job attempted.
func (m *Manager) Apply(ctx context.Context, projectID string, jobs ...fxforge.Job) ([]*fxforge.Report, error) {
	var reports []*fxforge.Report
	err := m.WithLock(ctx, projectID, func(ctx context.Context) error {
		project, created, err := m.loadOrNew(ctx, projectID)
		if err != nil {
			return err
		}
		if created {
			m.logger.Info("project created", "project_id", projectID)
		}

		var jobErr error
		for i, job := range jobs {
			if err := ctx.Err(); err != nil {
				jobErr = err
				break
			}
			report, err := m.forge.Apply(project, job)
			if report != nil {
				reports = append(reports, report)
			}
			if err != nil {
				jobErr = fmt.Errorf("job %d (%s): %w", i, job.Kind(), err)
				break
			}
		}

		if err := m.store.Save(ctx, project); err != nil {
			return errors.Join(jobErr, fmt.Errorf("failed to save project: %w", err))
		}
		return jobErr
	})
	return reports, err
}

// Save persists the project.
func (m *Manager) Save(ctx context.Context, project *domain.Project) error {
	return m.WithLock(ctx, project.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, project)
	})
}

// Delete removes the project from the store.
func (m *Manager) Delete(ctx context.Context, projectID string) error {
	return m.WithLock(ctx, projectID, func(ctx context.Context) error {
		return m.store.Delete(ctx, projectID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying project store.
func (m *Manager) Store() ports.ProjectStore {
	return m.store
}

// WithLock executes fn while holding the lock for the project.
func (m *Manager) WithLock(ctx context.Context, projectID string, fn func(context.Context) error) error {
	entry := m.acquire(projectID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(projectID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, projectID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"project_id", projectID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
