package synth

import (
	"fmt"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/registry"
)

// IntegerDefaultStateName is the idle state of integer layers, selected by 0.
const IntegerDefaultStateName = "0_Default"

// IndexedStateName names a state selected by value, e.g. "3_Hat".
func IndexedStateName(value int, name string) string {
	return fmt.Sprintf("%d_%s", value, name)
}

type indexedState struct {
	state *domain.State
	value int
}

// BuildIntegerLayer rebuilds layerName as a selector over items: item i
// (1-based) becomes state "{i}_{name}" entered from any state when the int
// parameter equals i, and 0 returns to the idle state. Items without a clip
// create no state but still consume their index. parameterName defaults to
// layerName.
//
// If parameterName already exists with another kind, the states are kept and
// no transitions are created.
func (s *Synthesizer) BuildIntegerLayer(ctrl *domain.Controller, layerName, parameterName string, items []domain.NamedClip) (*domain.Layer, error) {
	const op = "build_int_layer"

	layer, err := s.prepare(op, ctrl, layerName)
	if err != nil {
		return nil, err
	}
	if parameterName == "" {
		parameterName = layerName
	}

	def := s.addState(layer, IntegerDefaultStateName, nil)

	var indexed []indexedState
	for i, item := range items {
		value := i + 1
		if item.Clip == nil {
			continue
		}
		if st := s.addState(layer, IndexedStateName(value, item.Name), item.Clip); st != nil {
			indexed = append(indexed, indexedState{state: st, value: value})
		}
	}

	if _, err := registry.EnsureKind(ctrl.Parameters, parameterName, domain.KindInt); err != nil {
		s.finish(layer, VariantInt, err)
		return layer, err
	}

	err = s.wireIndexed(op, layer, def.Name, parameterName, indexed)
	s.finish(layer, VariantInt, err)
	return layer, err
}

func (s *Synthesizer) wireIndexed(op string, layer *domain.Layer, def, parameter string, indexed []indexedState) error {
	if err := layer.AddTransition(domain.AnyState, def, domain.Equals(parameter, 0)); err != nil {
		return domain.NewConfigurationError(op, layer.Name, err)
	}
	for _, is := range indexed {
		if err := layer.AddTransition(domain.AnyState, is.state.Name, domain.Equals(parameter, is.value)); err != nil {
			return domain.NewConfigurationError(op, layer.Name, err)
		}
	}
	return nil
}
