// Package registry declares named parameters in a parameter space exactly once.
package registry

import (
	"github.com/aretw0/fxforge/pkg/domain"
)

// Option adjusts a parameter before it is first inserted.
type Option func(*domain.Parameter)

// Synced marks a new parameter as saved and network synchronized, as the
// menu's parameter set expects.
func Synced() Option {
	return func(p *domain.Parameter) {
		p.Saved = true
		p.Synced = true
	}
}

// WithDefault sets the initial value of a new parameter.
func WithDefault(v float64) Option {
	return func(p *domain.Parameter) {
		p.Default = v
	}
}

// Ensure returns the parameter called name in space, creating it with kind
// when absent. An existing entry is returned unchanged even if its kind
// differs from the request; callers that care must compare Kind themselves.
// Options only apply to newly created entries.
func Ensure(space *domain.ParameterSpace, name string, kind domain.ParameterKind, opts ...Option) (domain.Parameter, error) {
	if space == nil {
		return domain.Parameter{}, domain.NewConfigurationError("ensure_parameter", name, domain.ErrNilSpace)
	}
	if existing := space.Lookup(name); existing != nil {
		return *existing, nil
	}

	p := domain.Parameter{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(&p)
	}
	stored, _ := space.Insert(p)
	return stored, nil
}

// EnsureKind is Ensure followed by a kind check. A mismatched existing entry
// is left in place and reported as a configuration error.
func EnsureKind(space *domain.ParameterSpace, name string, kind domain.ParameterKind, opts ...Option) (domain.Parameter, error) {
	p, err := Ensure(space, name, kind, opts...)
	if err != nil {
		return p, err
	}
	if p.Kind != kind {
		return p, domain.NewConfigurationError("ensure_parameter", name, &KindMismatchError{Name: name, Want: kind, Got: p.Kind})
	}
	return p, nil
}

// KindMismatchError reports a parameter that already exists with another kind.
type KindMismatchError struct {
	Name string
	Want domain.ParameterKind
	Got  domain.ParameterKind
}

func (e *KindMismatchError) Error() string {
	return "parameter " + e.Name + " is declared as " + e.Got.String() + ", not " + e.Want.String()
}
