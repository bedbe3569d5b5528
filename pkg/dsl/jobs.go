package dsl

import (
	"fmt"

	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/pkg/domain"
)

func missing(field string) error {
	return fmt.Errorf("%w: %s is required", ErrIncompleteJob, field)
}

// BoolBuilder configures a BoolJob.
type BoolBuilder struct {
	job  *fxforge.BoolJob
	name string
}

func (b *BoolBuilder) key() string {
	if b.job.PerClip {
		return "perclip:" + b.name
	}
	return "bool:" + b.job.Layer
}

func (b *BoolBuilder) build() (fxforge.Job, error) {
	if !b.job.PerClip && b.job.Layer == "" {
		return nil, missing("layer")
	}
	return b.job, nil
}

// Clip adds a clip whose name becomes the state and parameter name.
func (b *BoolBuilder) Clip(name, path string) *BoolBuilder {
	b.job.Items = append(b.job.Items, domain.Item(name, path))
	return b
}

// Empty adds a placeholder item that creates no state.
func (b *BoolBuilder) Empty(name string) *BoolBuilder {
	b.job.Items = append(b.job.Items, domain.EmptyItem(name))
	return b
}

// InMenu exposes the toggles under path ("" for the default "Bools" folder).
func (b *BoolBuilder) InMenu(path string) *BoolBuilder {
	b.job.Menu = &fxforge.MenuTarget{Path: path}
	return b
}

// IntBuilder configures an IntJob.
type IntBuilder struct {
	job *fxforge.IntJob
}

func (b *IntBuilder) key() string { return "int:" + b.job.Layer }

func (b *IntBuilder) build() (fxforge.Job, error) {
	if b.job.Layer == "" {
		return nil, missing("layer")
	}
	return b.job, nil
}

// Parameter overrides the selector parameter (default: the layer name).
func (b *IntBuilder) Parameter(name string) *IntBuilder {
	b.job.Parameter = name
	return b
}

// Clip appends the next indexed clip.
func (b *IntBuilder) Clip(name, path string) *IntBuilder {
	b.job.Items = append(b.job.Items, domain.Item(name, path))
	return b
}

// Empty reserves an index without creating a state.
func (b *IntBuilder) Empty(name string) *IntBuilder {
	b.job.Items = append(b.job.Items, domain.EmptyItem(name))
	return b
}

// InMenu exposes one toggle per clip under path ("" for "Int").
func (b *IntBuilder) InMenu(path string) *IntBuilder {
	b.job.Menu = &fxforge.MenuTarget{Path: path}
	return b
}

// OverlayBuilder configures an OverlayJob.
type OverlayBuilder struct {
	job *fxforge.OverlayJob
}

func (b *OverlayBuilder) key() string { return "overlay:" + b.job.Layer }

func (b *OverlayBuilder) build() (fxforge.Job, error) {
	switch {
	case b.job.Layer == "":
		return nil, missing("layer")
	case b.job.Selector == "":
		return nil, missing("selector")
	}
	return b.job, nil
}

// Selector names the existing int parameter that picks the group.
func (b *OverlayBuilder) Selector(name string) *OverlayBuilder {
	b.job.Selector = name
	return b
}

// Enable names the bool gate (default: the layer name).
func (b *OverlayBuilder) Enable(name string) *OverlayBuilder {
	b.job.Enable = name
	return b
}

// Clip adds a clip shown when the selector equals group.
func (b *OverlayBuilder) Clip(group int, name, path string) *OverlayBuilder {
	b.job.Items = append(b.job.Items, domain.GroupedClip{Group: group, NamedClip: domain.Item(name, path)})
	return b
}

// Groups adds pre-grouped clips, typically from scan.Directory.
func (b *OverlayBuilder) Groups(items ...domain.GroupedClip) *OverlayBuilder {
	b.job.Items = append(b.job.Items, items...)
	return b
}

// InMenu exposes the enable toggle under path ("" for "Parts").
func (b *OverlayBuilder) InMenu(path string) *OverlayBuilder {
	b.job.Menu = &fxforge.MenuTarget{Path: path}
	return b
}

// ControlBuilder configures a ControlJob.
type ControlBuilder struct {
	job *fxforge.ControlJob
	seq int
}

func (b *ControlBuilder) key() string { return fmt.Sprintf("control:%d:%s", b.seq, b.job.Control) }

func (b *ControlBuilder) build() (fxforge.Job, error) {
	switch {
	case b.job.Control == "":
		return nil, missing("control")
	case b.job.Parameter == "":
		return nil, missing("parameter")
	}
	return b.job, nil
}

// Sets binds the toggle to parameter of the given kind and value.
func (b *ControlBuilder) Sets(parameter string, kind domain.ParameterKind, value float64) *ControlBuilder {
	b.job.Parameter = parameter
	b.job.Type = kind
	b.job.Value = value
	return b
}

// In places the control under a folder path.
func (b *ControlBuilder) In(path string) *ControlBuilder {
	b.job.Path = path
	return b
}
