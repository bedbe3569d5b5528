package domain

import "fmt"

// Validate checks the structural invariants of a layer:
// exactly one default state, transitions between known states, and every
// non-default state entered from the default or any state and able to
// return to the default.
func (l *Layer) Validate() error {
	var errs []error

	defaults := 0
	for _, s := range l.States {
		if s.Default {
			defaults++
		}
	}
	if defaults != 1 {
		errs = append(errs, &ValidationError{Layer: l.Name, Reason: fmt.Sprintf("expected exactly one default state, found %d", defaults)})
	}

	for _, t := range l.Transitions {
		if !t.FromAnyState() && l.State(t.From) == nil {
			errs = append(errs, &ValidationError{Layer: l.Name, State: t.From, Reason: "transition source does not exist"})
		}
		if l.State(t.To) == nil {
			errs = append(errs, &ValidationError{Layer: l.Name, State: t.To, Reason: "transition target does not exist"})
		}
	}

	def := l.DefaultState()
	if def != nil {
		anyToDefault := false
		for _, t := range l.TransitionsFrom(AnyState) {
			if t.To == def.Name {
				anyToDefault = true
				break
			}
		}
		for _, s := range l.NonDefaultStates() {
			entered := false
			for _, t := range l.TransitionsTo(s.Name) {
				if t.FromAnyState() || t.From == def.Name {
					entered = true
					break
				}
			}
			if !entered {
				errs = append(errs, &ValidationError{Layer: l.Name, State: s.Name, Reason: "not reachable from default or any state"})
			}

			returns := anyToDefault
			for _, t := range l.TransitionsFrom(s.Name) {
				if t.To == def.Name {
					returns = true
					break
				}
			}
			if !returns {
				errs = append(errs, &ValidationError{Layer: l.Name, State: s.Name, Reason: "no transition back to default"})
			}
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Validate checks every layer and that each condition references a declared
// parameter of a compatible kind.
func (c *Controller) Validate() error {
	var errs []error
	for _, l := range c.Layers {
		if err := l.Validate(); err != nil {
			if inner := ValidationErrors(err); inner != nil {
				errs = append(errs, inner...)
			} else {
				errs = append(errs, err)
			}
		}
		for _, t := range l.Transitions {
			for _, cond := range t.Conditions {
				if err := c.checkCondition(l.Name, cond); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func (c *Controller) checkCondition(layer string, cond Condition) error {
	p := c.Parameters.Lookup(cond.Parameter)
	if p == nil {
		return &ValidationError{Layer: layer, Reason: fmt.Sprintf("condition references undeclared parameter %q", cond.Parameter)}
	}
	switch cond.Mode {
	case ModeIf, ModeIfNot:
		if p.Kind != KindBool {
			return &ValidationError{Layer: layer, Reason: fmt.Sprintf("condition %q needs a bool parameter, %q is %s", cond, p.Name, p.Kind)}
		}
	case ModeEquals, ModeNotEquals:
		if p.Kind != KindInt {
			return &ValidationError{Layer: layer, Reason: fmt.Sprintf("condition %q needs an int parameter, %q is %s", cond, p.Name, p.Kind)}
		}
	case ModeGreater, ModeLess:
		if p.Kind == KindBool {
			return &ValidationError{Layer: layer, Reason: fmt.Sprintf("condition %q needs a numeric parameter, %q is %s", cond, p.Name, p.Kind)}
		}
	}
	return nil
}
