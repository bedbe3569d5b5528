/*
Package fxforge generates parameter-driven state machine layers and the paginated
menu that drives them.

A Project holds three artifacts: a Controller (layers plus their parameter
space), a root Menu of bounded pages, and the menu's synchronized parameter
set. Forge applies Jobs to a Project:

  - BoolJob: one boolean-gated layer over a set of clips, or one layer per clip.
  - IntJob: one layer whose states are selected by an integer parameter.
  - OverlayJob: a layer keyed by an existing integer selector and gated by an enable flag.
  - ControlJob: a single menu toggle.

Jobs that carry a MenuTarget also mirror their parameters into the menu
parameter set and add toggles under the target folder, paginating into
"Page N" continuation pages once a page holds eight controls.

# Usage

	project := domain.NewProject("avatar")
	forge := fxforge.New(fxforge.WithLogger(logger))

	report, err := forge.Apply(project, &fxforge.BoolJob{
		Layer: "Props",
		Items: []domain.NamedClip{domain.Item("Hat", "anims/Hat.anim")},
		Menu:  &fxforge.MenuTarget{Path: "Props"},
	})

Forge is pure and synchronous. For multi-caller use, persist projects through a
ports.ProjectStore and serialise access with workspace.Manager.
*/
package fxforge
