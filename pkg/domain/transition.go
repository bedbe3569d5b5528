package domain

import "fmt"

// AnyState is the pseudo source of transitions that may fire from every state.
const AnyState = "Any State"

// ConditionMode selects how a Condition compares its parameter.
type ConditionMode int

const (
	ModeIf ConditionMode = iota + 1
	ModeIfNot
	ModeEquals
	ModeNotEquals
	ModeGreater
	ModeLess
)

var conditionModeNames = map[ConditionMode]string{
	ModeIf:        "if",
	ModeIfNot:     "if_not",
	ModeEquals:    "equals",
	ModeNotEquals: "not_equals",
	ModeGreater:   "greater",
	ModeLess:      "less",
}

func (m ConditionMode) String() string {
	if s, ok := conditionModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m ConditionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ConditionMode) UnmarshalText(text []byte) error {
	for mode, name := range conditionModeNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown condition mode: %q", text)
}

// Condition guards a Transition. Build it with If, IfNot, Equals, NotEquals,
// Greater or Less rather than by hand; the boolean modes ignore Threshold.
type Condition struct {
	Mode      ConditionMode `json:"mode" yaml:"mode"`
	Parameter string        `json:"parameter" yaml:"parameter"`
	Threshold float64       `json:"threshold" yaml:"threshold"`
}

// If holds while the boolean parameter is true.
func If(parameter string) Condition {
	return Condition{Mode: ModeIf, Parameter: parameter}
}

// IfNot holds while the boolean parameter is false.
func IfNot(parameter string) Condition {
	return Condition{Mode: ModeIfNot, Parameter: parameter}
}

// Equals holds while the integer parameter equals value.
func Equals(parameter string, value int) Condition {
	return Condition{Mode: ModeEquals, Parameter: parameter, Threshold: float64(value)}
}

// NotEquals holds while the integer parameter differs from value.
func NotEquals(parameter string, value int) Condition {
	return Condition{Mode: ModeNotEquals, Parameter: parameter, Threshold: float64(value)}
}

// Greater holds while the numeric parameter is above threshold.
func Greater(parameter string, threshold float64) Condition {
	return Condition{Mode: ModeGreater, Parameter: parameter, Threshold: threshold}
}

// Less holds while the numeric parameter is below threshold.
func Less(parameter string, threshold float64) Condition {
	return Condition{Mode: ModeLess, Parameter: parameter, Threshold: threshold}
}

// String renders the condition as a short expression, e.g. "Outfit == 2".
func (c Condition) String() string {
	switch c.Mode {
	case ModeIf:
		return c.Parameter
	case ModeIfNot:
		return "!" + c.Parameter
	case ModeEquals:
		return fmt.Sprintf("%s == %g", c.Parameter, c.Threshold)
	case ModeNotEquals:
		return fmt.Sprintf("%s != %g", c.Parameter, c.Threshold)
	case ModeGreater:
		return fmt.Sprintf("%s > %g", c.Parameter, c.Threshold)
	case ModeLess:
		return fmt.Sprintf("%s < %g", c.Parameter, c.Threshold)
	default:
		return fmt.Sprintf("%s ? %g", c.Parameter, c.Threshold)
	}
}

// Transition moves a layer from one state to another once all conditions hold.
type Transition struct {
	// From is a state name, or AnyState.
	From       string      `json:"from" yaml:"from"`
	To         string      `json:"to" yaml:"to"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`

	// Immediate transitions have no exit time and zero duration.
	Immediate bool `json:"immediate" yaml:"immediate"`
}

// FromAnyState reports whether the transition can fire from every state.
func (t Transition) FromAnyState() bool {
	return t.From == AnyState
}

// Uses reports whether any condition references the parameter.
func (t Transition) Uses(parameter string) bool {
	for _, c := range t.Conditions {
		if c.Parameter == parameter {
			return true
		}
	}
	return false
}
