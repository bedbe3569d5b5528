package middleware

import (
	"errors"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/ports"
)

// Middleware allows wrapping a ProjectStore to add behavior.
type Middleware func(ports.ProjectStore) ports.ProjectStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.ProjectStore, mws ...Middleware) ports.ProjectStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

// outcome classifies a store error for logs and metric labels.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrProjectNotFound):
		return "not_found"
	default:
		return "error"
	}
}
