package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/fxforge/pkg/domain"
)

const anyStateID = "AnyState"

// LayerMermaid produces a Mermaid stateDiagram for one layer.
// A state's clip is shown only when the state is not named after it.
// The default state is entered from [*]; any-state transitions start from a
// shared "Any State" node. Guards are joined with "&&".
func LayerMermaid(layer *domain.Layer) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	if layer == nil {
		return sb.String()
	}

	for _, s := range layer.States {
		label := s.Name
		if s.Motion != nil && s.Motion.Name != "" && !strings.HasSuffix(s.Name, s.Motion.Name) {
			label = fmt.Sprintf("%s <br/> %s", s.Name, s.Motion.Name)
		}
		fmt.Fprintf(&sb, "    state \"%s\" as %s\n", escape(label), sanitizeMermaidID(s.Name))
	}
	for _, t := range layer.Transitions {
		if t.FromAnyState() {
			fmt.Fprintf(&sb, "    state \"%s\" as %s\n", domain.AnyState, anyStateID)
			break
		}
	}

	if def := layer.DefaultState(); def != nil {
		fmt.Fprintf(&sb, "    [*] --> %s\n", sanitizeMermaidID(def.Name))
	}

	for _, t := range layer.Transitions {
		from := anyStateID
		if !t.FromAnyState() {
			from = sanitizeMermaidID(t.From)
		}
		line := fmt.Sprintf("    %s --> %s", from, sanitizeMermaidID(t.To))
		if guard := conditionLabel(t.Conditions); guard != "" {
			line += " : " + guard
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// MenuMermaid produces a Mermaid flowchart of a menu tree. Containers are
// rectangles, toggles are parallelograms and continuation pages are joined
// by dotted edges.
func MenuMermaid(root *domain.Menu) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	root.Walk(func(m *domain.Menu, _ int) bool {
		id := menuNodeID(m)
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", id, escape(m.Name))
		for i, c := range m.Controls {
			switch {
			case c.Kind == domain.ControlToggle:
				cid := fmt.Sprintf("%s_%d", id, i)
				fmt.Fprintf(&sb, "    %s[/\"%s <br/> %s = %g\"/]\n", cid, escape(c.Name), escape(c.Parameter), c.Value)
				fmt.Fprintf(&sb, "    %s --> %s\n", id, cid)
			case c.SubMenu == nil:
				cid := fmt.Sprintf("%s_%d", id, i)
				fmt.Fprintf(&sb, "    %s[\"%s (empty)\"]\n", cid, escape(c.Name))
				fmt.Fprintf(&sb, "    %s --> %s\n", id, cid)
			default:
				if _, isPage := c.PageNumber(); isPage {
					fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", id, escape(c.Name), menuNodeID(c.SubMenu))
				} else {
					fmt.Fprintf(&sb, "    %s --> %s\n", id, menuNodeID(c.SubMenu))
				}
			}
		}
		return true
	})
	return sb.String()
}

// MenuTree renders the menu as an indented text tree. Continuation pages are
// shown inline under their "Page N" link.
func MenuTree(root *domain.Menu) string {
	var sb strings.Builder
	if root == nil {
		return ""
	}
	sb.WriteString(root.Name + "\n")
	writeTree(&sb, root, "", map[*domain.Menu]bool{root: true})
	return sb.String()
}

func writeTree(sb *strings.Builder, m *domain.Menu, indent string, seen map[*domain.Menu]bool) {
	for i, c := range m.Controls {
		branch, next := "├── ", "│   "
		if i == len(m.Controls)-1 {
			branch, next = "└── ", "    "
		}
		switch {
		case c.Kind == domain.ControlToggle:
			fmt.Fprintf(sb, "%s%s%s (%s = %g)\n", indent, branch, c.Name, c.Parameter, c.Value)
		case c.SubMenu == nil:
			fmt.Fprintf(sb, "%s%s%s/ (empty)\n", indent, branch, c.Name)
		case seen[c.SubMenu]:
			fmt.Fprintf(sb, "%s%s%s/ (cycle)\n", indent, branch, c.Name)
		default:
			fmt.Fprintf(sb, "%s%s%s/\n", indent, branch, c.Name)
			seen[c.SubMenu] = true
			writeTree(sb, c.SubMenu, indent+next, seen)
		}
	}
}

func conditionLabel(conds []domain.Condition) string {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		parts = append(parts, c.String())
	}
	// Mermaid uses ':' as the label separator.
	return strings.ReplaceAll(strings.Join(parts, " && "), ":", " ")
}

func menuNodeID(m *domain.Menu) string {
	return "m_" + sanitizeMermaidID(m.ID)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return "s_" + r.Replace(id)
}
