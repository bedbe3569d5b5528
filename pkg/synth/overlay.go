package synth

import (
	"errors"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/registry"
)

// ErrSelectorMissing is returned when the overlay selector is not declared as an int parameter.
var ErrSelectorMissing = errors.New("selector is not an int parameter of the controller")

// BuildIndexedOverlayLayer rebuilds layerName from pre-grouped clips. Each
// clip becomes state "{group}_{name}", entered from any state when selector
// equals its group and the enable flag is set, and left for the idle state
// when the flag clears. Groups need not be contiguous.
//
// The selector must already be declared as an int parameter; the enable flag
// (default: layerName) is declared as bool. When the selector is missing the
// states are kept, no transitions are created and a configuration error is
// returned.
func (s *Synthesizer) BuildIndexedOverlayLayer(ctrl *domain.Controller, layerName, selector, enable string, items []domain.GroupedClip) (*domain.Layer, error) {
	const op = "build_overlay_layer"

	layer, err := s.prepare(op, ctrl, layerName)
	if err != nil {
		return nil, err
	}
	if enable == "" {
		enable = layerName
	}

	def := s.addState(layer, DefaultStateName, nil)

	var indexed []indexedState
	for _, item := range items {
		if item.Clip == nil {
			continue
		}
		st := s.addState(layer, IndexedStateName(item.Group, item.Name), item.Clip)
		if st == nil {
			continue
		}
		st.WriteDefaults = true
		indexed = append(indexed, indexedState{state: st, value: item.Group})
	}

	if _, err := registry.EnsureKind(ctrl.Parameters, enable, domain.KindBool); err != nil {
		s.finish(layer, VariantOverlay, err)
		return layer, err
	}

	if p := ctrl.Parameters.Lookup(selector); p == nil || p.Kind != domain.KindInt {
		err := domain.NewConfigurationError(op, selector, ErrSelectorMissing)
		s.finish(layer, VariantOverlay, err)
		return layer, err
	}

	for _, is := range indexed {
		if err := layer.AddTransition(domain.AnyState, is.state.Name,
			domain.Equals(selector, is.value), domain.If(enable)); err != nil {
			err = domain.NewConfigurationError(op, layer.Name, err)
			s.finish(layer, VariantOverlay, err)
			return layer, err
		}
		if err := layer.AddTransition(is.state.Name, def.Name, domain.IfNot(enable)); err != nil {
			err = domain.NewConfigurationError(op, layer.Name, err)
			s.finish(layer, VariantOverlay, err)
			return layer, err
		}
	}

	s.finish(layer, VariantOverlay, nil)
	return layer, nil
}
