package ports

import (
	"context"

	"github.com/aretw0/fxforge/pkg/domain"
)

// ProjectStore defines the interface for persisting projects between jobs.
// Implementations store the whole project (controller, menu tree and menu
// parameters) as one document.
type ProjectStore interface {
	// Save persists the project under its ID, replacing any previous version.
	Save(ctx context.Context, project *domain.Project) error

	// Load retrieves the project with the given ID.
	// Returns domain.ErrProjectNotFound if it does not exist.
	Load(ctx context.Context, projectID string) (*domain.Project, error)

	// Delete removes the project. Deleting a missing project is not an error.
	Delete(ctx context.Context, projectID string) error

	// List returns the IDs of all stored projects.
	List(ctx context.Context) ([]string, error)
}
