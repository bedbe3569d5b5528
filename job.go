package fxforge

import (
	"errors"

	"github.com/aretw0/fxforge/pkg/domain"
)

// JobKind names a Job type in manifests, reports and APIs.
type JobKind string

const (
	JobBool    JobKind = "bool"
	JobInt     JobKind = "int"
	JobOverlay JobKind = "overlay"
	JobControl JobKind = "control"
)

// Default submenu paths used when a MenuTarget leaves Path empty.
const (
	DefaultBoolMenu    = "Bools"
	DefaultIntMenu     = "Int"
	DefaultOverlayMenu = "Parts"
)

// ErrMissingParameter is returned by a ControlJob without a parameter.
var ErrMissingParameter = errors.New("control parameter is empty")

// Job is a unit of work for Forge.Apply.
type Job interface {
	Kind() JobKind
}

// MenuTarget asks a job to expose its parameters in the menu, under Path.
type MenuTarget struct {
	Path string `json:"path,omitempty" mapstructure:"path"`
}

func (t *MenuTarget) path(fallback string) string {
	if t == nil || t.Path == "" {
		return fallback
	}
	return t.Path
}

// BoolJob builds one boolean layer over Items, or one layer per item when
// PerClip is set (Layer is then ignored).
type BoolJob struct {
	Layer   string             `json:"layer,omitempty"`
	PerClip bool               `json:"per_clip,omitempty"`
	Items   []domain.NamedClip `json:"items"`
	Menu    *MenuTarget        `json:"menu,omitempty"`
}

// Kind implements Job.
func (*BoolJob) Kind() JobKind { return JobBool }

// IntJob builds an integer-indexed layer. Parameter defaults to Layer.
type IntJob struct {
	Layer     string             `json:"layer"`
	Parameter string             `json:"parameter,omitempty"`
	Items     []domain.NamedClip `json:"items"`
	Menu      *MenuTarget        `json:"menu,omitempty"`
}

// Kind implements Job.
func (*IntJob) Kind() JobKind { return JobInt }

func (j *IntJob) parameter() string {
	if j.Parameter == "" {
		return j.Layer
	}
	return j.Parameter
}

// OverlayJob builds an indexed overlay layer selected by an existing integer
// parameter and gated by the Enable bool (defaults to Layer).
type OverlayJob struct {
	Layer    string               `json:"layer"`
	Selector string               `json:"selector"`
	Enable   string               `json:"enable,omitempty"`
	Items    []domain.GroupedClip `json:"items"`
	Menu     *MenuTarget          `json:"menu,omitempty"`
}

// Kind implements Job.
func (*OverlayJob) Kind() JobKind { return JobOverlay }

func (j *OverlayJob) enable() string {
	if j.Enable == "" {
		return j.Layer
	}
	return j.Enable
}

// ControlJob adds a single toggle to the menu and declares its parameter in
// the menu parameter set. An empty Path targets the root menu and an unset
// Type declares a bool.
type ControlJob struct {
	Path      string               `json:"path,omitempty"`
	Control   string               `json:"control"`
	Parameter string               `json:"parameter"`
	Type      domain.ParameterKind `json:"type,omitempty"`
	Value     float64              `json:"value,omitempty"`
}

// Kind implements Job.
func (*ControlJob) Kind() JobKind { return JobControl }
