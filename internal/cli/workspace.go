package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/observability"
	"github.com/aretw0/fxforge/pkg/persistence/middleware"
	"github.com/aretw0/fxforge/pkg/workspace"
)

// Env is everything a command needs to work on stored projects.
type Env struct {
	Workspace *workspace.Manager
	Backend   *Backend
	Logger    *slog.Logger
}

// Close releases the backend.
func (e *Env) Close() error {
	return e.Backend.Close()
}

// WorkspaceOptions configures NewEnv.
type WorkspaceOptions struct {
	Store        StoreOptions
	MenuCapacity int
	// Hooks are merged after the logging hooks.
	Hooks domain.LifecycleHooks
	// StoreMiddleware wraps the store inside the logging middleware.
	StoreMiddleware []middleware.Middleware
}

// NewEnv opens the store and builds a workspace whose Forge and store calls
// are logged through logger.
func NewEnv(ctx context.Context, opts WorkspaceOptions, logger *slog.Logger) (*Env, error) {
	backend, err := OpenStore(ctx, opts.Store)
	if err != nil {
		return nil, err
	}

	forgeOpts := []fxforge.Option{
		fxforge.WithLogger(logger),
		fxforge.WithLifecycleHooks(observability.LoggingHooks(logger).Merge(opts.Hooks)),
	}
	if opts.MenuCapacity > 0 {
		forgeOpts = append(forgeOpts, fxforge.WithMenuCapacity(opts.MenuCapacity))
	}

	mws := append([]middleware.Middleware{middleware.NewLoggingMiddleware(logger)}, opts.StoreMiddleware...)
	store := middleware.Chain(backend.Store, mws...)

	wsOpts := []workspace.Option{
		workspace.WithLogger(logger),
		workspace.WithForge(fxforge.New(forgeOpts...)),
	}
	if backend.Locker != nil {
		wsOpts = append(wsOpts, workspace.WithLocker(backend.Locker))
	}

	logger.Debug("workspace ready", "store", opts.Store.Kind)
	return &Env{
		Workspace: workspace.NewManager(store, wsOpts...),
		Backend:   backend,
		Logger:    logger,
	}, nil
}
