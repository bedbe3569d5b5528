package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/internal/presentation/graph"
	"github.com/aretw0/fxforge/pkg/domain"
)

// ProjectMarkdown summarises a project as markdown: controller parameters,
// layers with validation status, the menu parameter set and the menu tree.
func ProjectMarkdown(project *domain.Project) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", project.ID)

	if ctrl := project.Controller; ctrl != nil {
		sb.WriteString("## Parameters\n\n")
		writeParameters(&sb, ctrl.Parameters)

		sb.WriteString("## Layers\n\n")
		if len(ctrl.Layers) == 0 {
			sb.WriteString("_none_\n\n")
		} else {
			sb.WriteString("| Layer | States | Transitions | Status |\n|---|---|---|---|\n")
			for _, l := range ctrl.Layers {
				status := "ok"
				if err := l.Validate(); err != nil {
					status = fmt.Sprintf("%d problem(s)", len(domain.ValidationErrors(err)))
				}
				fmt.Fprintf(&sb, "| %s | %d | %d | %s |\n", l.Name, len(l.States), len(l.Transitions), status)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Menu Parameters\n\n")
	writeParameters(&sb, project.MenuParameters)

	if project.Menu != nil {
		sb.WriteString("## Menu\n\n```\n")
		sb.WriteString(graph.MenuTree(project.Menu))
		sb.WriteString("```\n")
	}
	return sb.String()
}

// ReportMarkdown summarises the outcome of one job.
func ReportMarkdown(r *fxforge.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s job on %s\n\n", r.Job, r.Project)
	if len(r.Layers) > 0 {
		fmt.Fprintf(&sb, "- Layers: %s (%d states, %d transitions)\n", strings.Join(r.Layers, ", "), r.States, r.Transitions)
	}
	if len(r.Parameters) > 0 {
		fmt.Fprintf(&sb, "- New menu parameters: %s\n", strings.Join(r.Parameters, ", "))
	}
	fmt.Fprintf(&sb, "- Controls: %d inserted, %d duplicates, %d pages allocated\n",
		r.ControlsInserted, r.Duplicates, r.PagesAllocated)
	return sb.String()
}

func writeParameters(sb *strings.Builder, space *domain.ParameterSpace) {
	if space == nil || space.Len() == 0 {
		sb.WriteString("_none_\n\n")
		return
	}
	sb.WriteString("| Name | Kind | Default | Synced |\n|---|---|---|---|\n")
	for _, p := range space.Entries {
		fmt.Fprintf(sb, "| %s | %s | %g | %t |\n", p.Name, p.Kind, p.Default, p.Synced)
	}
	sb.WriteString("\n")
}
