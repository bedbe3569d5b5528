package synth

import (
	"fmt"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/registry"
)

// DefaultStateName is the idle state of boolean and overlay layers.
const DefaultStateName = "Default"

// BuildBooleanLayer rebuilds layerName with an idle state plus one state per
// item with a clip. Each state gets its own bool parameter named after it,
// entered from the idle state on If and left on IfNot, so any number of
// items can be active at once.
func (s *Synthesizer) BuildBooleanLayer(ctrl *domain.Controller, layerName string, items []domain.NamedClip) (*domain.Layer, error) {
	const op = "build_bool_layer"

	layer, err := s.prepare(op, ctrl, layerName)
	if err != nil {
		return nil, err
	}

	def := s.addState(layer, DefaultStateName, nil)
	for _, item := range items {
		if item.Clip == nil {
			continue
		}
		s.addState(layer, item.Name, item.Clip)
	}

	err = s.wireBoolean(op, ctrl, layer, def.Name)
	s.finish(layer, VariantBool, err)
	return layer, err
}

func (s *Synthesizer) wireBoolean(op string, ctrl *domain.Controller, layer *domain.Layer, def string) error {
	for _, st := range layer.NonDefaultStates() {
		if _, err := registry.EnsureKind(ctrl.Parameters, st.Name, domain.KindBool); err != nil {
			return err
		}
		if err := layer.AddTransition(def, st.Name, domain.If(st.Name)); err != nil {
			return domain.NewConfigurationError(op, layer.Name, err)
		}
		if err := layer.AddTransition(st.Name, def, domain.IfNot(st.Name)); err != nil {
			return domain.NewConfigurationError(op, layer.Name, err)
		}
	}
	return nil
}

// BuildBooleanLayers builds one boolean layer per item with a clip, each
// named after its item. It stops at the first failure and returns the
// layers built so far.
func (s *Synthesizer) BuildBooleanLayers(ctrl *domain.Controller, items []domain.NamedClip) ([]*domain.Layer, error) {
	var layers []*domain.Layer
	for _, item := range items {
		if item.Clip == nil {
			continue
		}
		layer, err := s.BuildBooleanLayer(ctrl, item.Name, []domain.NamedClip{item})
		if layer != nil {
			layers = append(layers, layer)
		}
		if err != nil {
			return layers, fmt.Errorf("layer %q: %w", item.Name, err)
		}
	}
	return layers, nil
}
