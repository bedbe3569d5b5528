package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateState is returned when a layer already has a state with the requested name.
var ErrDuplicateState = errors.New("duplicate state")

// ErrUnknownState is returned when a transition references a state the layer does not own.
var ErrUnknownState = errors.New("unknown state")

// Layer is a named state machine inside a Controller.
type Layer struct {
	Name          string       `json:"name" yaml:"name"`
	DefaultWeight float64      `json:"default_weight" yaml:"default_weight"`
	States        []*State     `json:"states" yaml:"states"`
	Transitions   []Transition `json:"transitions" yaml:"transitions"`
}

// NewLayer creates an empty layer with full weight.
func NewLayer(name string) *Layer {
	return &Layer{
		Name:          name,
		DefaultWeight: 1,
		States:        []*State{},
		Transitions:   []Transition{},
	}
}

// Reset discards every state, and with them every transition, while keeping
// the layer's name and weight.
func (l *Layer) Reset() {
	l.States = []*State{}
	l.Transitions = []Transition{}
}

// State returns the state with the given name, or nil.
func (l *Layer) State(name string) *State {
	for _, s := range l.States {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// DefaultState returns the first state flagged as default, or nil.
func (l *Layer) DefaultState() *State {
	for _, s := range l.States {
		if s.Default {
			return s
		}
	}
	return nil
}

// AddState appends a state bound to motion. The first state added to an
// empty layer becomes the default.
func (l *Layer) AddState(name string, motion *Clip) (*State, error) {
	if l.State(name) != nil {
		return nil, fmt.Errorf("%w: %q in layer %q", ErrDuplicateState, name, l.Name)
	}
	s := &State{Name: name, Motion: motion, Default: len(l.States) == 0}
	l.States = append(l.States, s)
	return s, nil
}

// NonDefaultStates returns every state except the default, in insertion order.
func (l *Layer) NonDefaultStates() []*State {
	out := make([]*State, 0, len(l.States))
	for _, s := range l.States {
		if !s.Default {
			out = append(out, s)
		}
	}
	return out
}

// AddTransition wires from -> to. from may be AnyState.
func (l *Layer) AddTransition(from, to string, conditions ...Condition) error {
	if from != AnyState && l.State(from) == nil {
		return fmt.Errorf("%w: %q in layer %q", ErrUnknownState, from, l.Name)
	}
	if l.State(to) == nil {
		return fmt.Errorf("%w: %q in layer %q", ErrUnknownState, to, l.Name)
	}
	l.Transitions = append(l.Transitions, Transition{
		From:       from,
		To:         to,
		Conditions: conditions,
		Immediate:  true,
	})
	return nil
}

// TransitionsFrom returns transitions whose source is the named state (or AnyState).
func (l *Layer) TransitionsFrom(from string) []Transition {
	var out []Transition
	for _, t := range l.Transitions {
		if t.From == from {
			out = append(out, t)
		}
	}
	return out
}

// TransitionsTo returns transitions whose destination is the named state.
func (l *Layer) TransitionsTo(to string) []Transition {
	var out []Transition
	for _, t := range l.Transitions {
		if t.To == to {
			out = append(out, t)
		}
	}
	return out
}

// Controller owns a parameter space and an ordered list of layers.
type Controller struct {
	Name       string          `json:"name" yaml:"name"`
	Parameters *ParameterSpace `json:"parameters" yaml:"parameters"`
	Layers     []*Layer        `json:"layers" yaml:"layers"`
}

// NewController creates an empty controller.
func NewController(name string) *Controller {
	return &Controller{
		Name:       name,
		Parameters: NewParameterSpace(),
		Layers:     []*Layer{},
	}
}

// Layer returns the layer with the given name, or nil.
func (c *Controller) Layer(name string) *Layer {
	for _, l := range c.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// EnsureLayer returns the existing layer (reset) or appends a new one.
// The boolean reports whether the layer was newly created.
func (c *Controller) EnsureLayer(name string) (*Layer, bool) {
	if l := c.Layer(name); l != nil {
		l.Reset()
		return l, false
	}
	l := NewLayer(name)
	c.Layers = append(c.Layers, l)
	return l, true
}

// LayerNames returns layer names in order.
func (c *Controller) LayerNames() []string {
	names := make([]string, 0, len(c.Layers))
	for _, l := range c.Layers {
		names = append(names, l.Name)
	}
	return names
}
