package fxforge

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/menu"
	"github.com/aretw0/fxforge/pkg/registry"
	"github.com/aretw0/fxforge/pkg/synth"
)

// ErrNilProject is returned when Apply is called without a project.
var ErrNilProject = errors.New("project is nil")

// ErrUnknownJob is returned for Job implementations Forge cannot run.
var ErrUnknownJob = errors.New("unknown job type")

// Forge is the high-level entry point: it runs Jobs against a Project,
// driving layer synthesis, parameter declaration and menu composition.
// A Forge is stateless between calls; callers serialise access per project.
type Forge struct {
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	capacity int
}

// Option defines a functional option for configuring the Forge.
type Option func(*Forge)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Forge) {
		f.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Forge) {
		f.logger = logger
	}
}

// WithMenuCapacity overrides the number of controls per menu page.
func WithMenuCapacity(n int) Option {
	return func(f *Forge) {
		f.capacity = n
	}
}

// New creates a Forge.
func New(opts ...Option) *Forge {
	f := &Forge{capacity: menu.DefaultCapacity}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return f
}

// Report summarises what one Apply call changed.
type Report struct {
	Project     string   `json:"project"`
	Job         JobKind  `json:"job"`
	Layers      []string `json:"layers,omitempty"`
	States      int      `json:"states"`
	Transitions int      `json:"transitions"`

	// Parameters lists menu parameters added by this job.
	Parameters []string `json:"parameters,omitempty"`

	ControlsInserted int `json:"controls_inserted"`
	Duplicates       int `json:"duplicates"`
	PagesAllocated   int `json:"pages_allocated"`
}

// Apply runs job against project. A failure part-way through leaves the
// work already done in place; the returned Report describes it.
func (f *Forge) Apply(project *domain.Project, job Job) (*Report, error) {
	if project == nil {
		return nil, domain.NewConfigurationError("apply", "", ErrNilProject)
	}
	if job == nil {
		return nil, domain.NewConfigurationError("apply", project.ID, ErrUnknownJob)
	}

	report := &Report{Project: project.ID, Job: job.Kind()}
	hooks := f.reportHooks(report).Merge(f.hooks)
	logger := f.logger.With("project", project.ID, "job", string(job.Kind()))

	r := &run{
		project:  project,
		report:   report,
		logger:   logger,
		synth:    synth.New(synth.WithLogger(logger), synth.WithLifecycleHooks(hooks)),
		composer: menu.NewComposer(menu.WithCapacity(f.capacity), menu.WithLogger(logger), menu.WithLifecycleHooks(hooks)),
	}

	var err error
	switch j := job.(type) {
	case *BoolJob:
		err = r.boolean(j)
	case *IntJob:
		err = r.integer(j)
	case *OverlayJob:
		err = r.overlay(j)
	case *ControlJob:
		err = r.control(j)
	default:
		err = domain.NewConfigurationError("apply", fmt.Sprintf("%T", job), ErrUnknownJob)
	}
	if err != nil {
		logger.Warn("job failed", "err", err)
		return report, err
	}
	logger.Info("job applied", "layers", report.Layers, "controls", report.ControlsInserted)
	return report, nil
}

func (f *Forge) reportHooks(report *Report) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLayerBuilt: func(e *domain.LayerEvent) {
			report.Layers = append(report.Layers, e.Layer)
			report.States += e.States
			report.Transitions += e.Transitions
		},
		OnControlInserted:     func(*domain.MenuEvent) { report.ControlsInserted++ },
		OnDuplicateSuppressed: func(*domain.MenuEvent) { report.Duplicates++ },
		OnPageAllocated:       func(*domain.MenuEvent) { report.PagesAllocated++ },
	}
}

// run carries the collaborators of a single Apply call.
type run struct {
	project  *domain.Project
	report   *Report
	logger   *slog.Logger
	synth    *synth.Synthesizer
	composer *menu.Composer
}

func (r *run) mirror(op, name string, kind domain.ParameterKind) error {
	if r.project.MenuParameters == nil {
		return domain.NewConfigurationError(op, name, domain.ErrNilSpace)
	}
	before := r.project.MenuParameters.Len()
	if _, err := registry.Ensure(r.project.MenuParameters, name, kind, registry.Synced()); err != nil {
		return err
	}
	if r.project.MenuParameters.Len() > before {
		r.report.Parameters = append(r.report.Parameters, name)
	}
	return nil
}

func (r *run) addControl(op string, target *MenuTarget, fallback, controlName, parameter string, value float64) error {
	if r.project.Menu == nil {
		return domain.NewConfigurationError(op, controlName, menu.ErrNilMenu)
	}
	if _, err := r.composer.AddControl(r.project.Menu, target.path(fallback), controlName, parameter, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *run) boolean(j *BoolJob) error {
	const op = "bool_job"
	if j.PerClip {
		if _, err := r.synth.BuildBooleanLayers(r.project.Controller, j.Items); err != nil {
			return err
		}
	} else if _, err := r.synth.BuildBooleanLayer(r.project.Controller, j.Layer, j.Items); err != nil {
		return err
	}
	if j.Menu == nil {
		return nil
	}
	for _, item := range j.Items {
		if item.Clip == nil {
			continue
		}
		if err := r.mirror(op, item.Name, domain.KindBool); err != nil {
			return err
		}
		if err := r.addControl(op, j.Menu, DefaultBoolMenu, item.Name, item.Name, 0); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) integer(j *IntJob) error {
	const op = "int_job"
	parameter := j.parameter()
	if _, err := r.synth.BuildIntegerLayer(r.project.Controller, j.Layer, parameter, j.Items); err != nil {
		return err
	}
	if j.Menu == nil {
		return nil
	}
	if err := r.mirror(op, parameter, domain.KindInt); err != nil {
		return err
	}
	for i, item := range j.Items {
		if item.Clip == nil {
			continue
		}
		if err := r.addControl(op, j.Menu, DefaultIntMenu, item.Name, parameter, float64(i+1)); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) overlay(j *OverlayJob) error {
	const op = "overlay_job"
	enable := j.enable()
	if _, err := r.synth.BuildIndexedOverlayLayer(r.project.Controller, j.Layer, j.Selector, enable, j.Items); err != nil {
		return err
	}
	if j.Menu == nil {
		return nil
	}
	if err := r.mirror(op, enable, domain.KindBool); err != nil {
		return err
	}
	return r.addControl(op, j.Menu, DefaultOverlayMenu, j.Layer, enable, 0)
}

func (r *run) control(j *ControlJob) error {
	const op = "control_job"
	if j.Parameter == "" {
		return domain.NewConfigurationError(op, j.Control, ErrMissingParameter)
	}
	kind := j.Type
	if kind == 0 {
		kind = domain.KindBool
	}
	if err := r.mirror(op, j.Parameter, kind); err != nil {
		return err
	}
	return r.addControl(op, &MenuTarget{Path: j.Path}, "", j.Control, j.Parameter, j.Value)
}
