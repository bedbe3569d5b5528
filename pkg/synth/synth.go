package synth

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/fxforge/internal/logging"
	"github.com/aretw0/fxforge/pkg/domain"
)

// Variant names reported in LayerEvent.Variant.
const (
	VariantBool    = "bool"
	VariantInt     = "int"
	VariantOverlay = "overlay"
)

// ErrEmptyLayerName is returned when a build is requested without a layer name.
var ErrEmptyLayerName = errors.New("layer name is empty")

// ErrNilController is returned when the target controller handle is nil.
var ErrNilController = errors.New("controller is nil")

// Synthesizer builds layers inside a controller. It holds no per-build state
// and may be reused; a single build is not safe for concurrent use on the
// same controller.
type Synthesizer struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Synthesizer) {
		s.hooks = hooks
	}
}

// New creates a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// prepare validates the target and returns a fresh or reset layer.
func (s *Synthesizer) prepare(op string, ctrl *domain.Controller, layerName string) (*domain.Layer, error) {
	if ctrl == nil {
		return nil, domain.NewConfigurationError(op, layerName, ErrNilController)
	}
	if strings.TrimSpace(layerName) == "" {
		return nil, domain.NewConfigurationError(op, layerName, ErrEmptyLayerName)
	}
	layer, created := ctrl.EnsureLayer(layerName)
	if created {
		s.logger.Debug("layer created", "layer", layerName)
	} else {
		s.logger.Debug("layer reset", "layer", layerName)
	}
	return layer, nil
}

// addState adds a state, skipping (with a warning) names already taken.
func (s *Synthesizer) addState(layer *domain.Layer, name string, clip *domain.Clip) *domain.State {
	st, err := layer.AddState(name, clip)
	if err != nil {
		s.logger.Warn("state skipped", "layer", layer.Name, "state", name, "err", err)
		return nil
	}
	return st
}

func (s *Synthesizer) finish(layer *domain.Layer, variant string, err error) {
	if err != nil {
		s.logger.Error("layer build incomplete", "layer", layer.Name, "variant", variant, "err", err)
	} else {
		s.logger.Info("layer built", "layer", layer.Name, "variant", variant,
			"states", len(layer.States), "transitions", len(layer.Transitions))
	}
	if s.hooks.OnLayerBuilt != nil {
		s.hooks.OnLayerBuilt(&domain.LayerEvent{
			EventBase:   domain.EventBase{Timestamp: s.now(), Type: domain.EventLayerBuilt},
			Layer:       layer.Name,
			Variant:     variant,
			States:      len(layer.States),
			Transitions: len(layer.Transitions),
			Err:         err,
		})
	}
}
