package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/fxforge/internal/presentation/tui"
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/manifest"
)

// ErrNoProject is returned when neither the manifest nor the flags name a project.
var ErrNoProject = errors.New("no project: set `project:` in the manifest or pass --project")

// ApplyOptions configures RunApply.
type ApplyOptions struct {
	ManifestPath string
	Project      string // overrides the manifest's project
}

// RunApply loads a manifest, applies its jobs to the stored project and
// prints one report per job. Reports for jobs run before a failure are
// printed too.
func RunApply(ctx context.Context, env *Env, opts ApplyOptions, out io.Writer) error {
	file, err := manifest.Load(opts.ManifestPath, manifest.WithLogger(env.Logger))
	if err != nil {
		return err
	}
	projectID := opts.Project
	if projectID == "" {
		projectID = file.Project
	}
	if projectID == "" {
		return ErrNoProject
	}

	env.Logger.Info("applying manifest", "manifest", opts.ManifestPath, "project_id", projectID, "jobs", len(file.Jobs))
	reports, applyErr := env.Workspace.Apply(ctx, projectID, file.Jobs...)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", projectID)
	for _, r := range reports {
		sb.WriteString(tui.ReportMarkdown(r))
		sb.WriteString("\n")
	}
	if err := PrintMarkdown(out, sb.String()); err != nil {
		return err
	}
	return applyErr
}

// ValidateProject runs layer validation on every layer of the stored project
// and writes one line per problem.
func ValidateProject(ctx context.Context, env *Env, projectID string, out io.Writer) error {
	project, err := env.Workspace.Load(ctx, projectID)
	if err != nil {
		return err
	}
	if project.Controller == nil {
		return fmt.Errorf("project %q has no controller", projectID)
	}
	err = project.Controller.Validate()
	for _, problem := range domain.ValidationErrors(err) {
		fmt.Fprintf(out, "- %v\n", problem)
	}
	return err
}
