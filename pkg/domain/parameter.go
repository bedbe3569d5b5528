package domain

import (
	"fmt"
	"strings"
)

// ParameterKind is the value type of a Parameter.
type ParameterKind int

// The zero value is unset; callers pick their own default for it.
const (
	KindFloat ParameterKind = iota + 1
	KindInt
	KindBool
)

// String returns the lowercase name used in manifests and JSON.
func (k ParameterKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ParameterKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ParameterKind) UnmarshalText(text []byte) error {
	parsed, err := ParseParameterKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseParameterKind converts "bool", "int" or "float" (case-insensitive) to a ParameterKind.
func ParseParameterKind(s string) (ParameterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	default:
		return 0, fmt.Errorf("unsupported parameter kind: %q", s)
	}
}

// Parameter is a named, typed value in a parameter space.
type Parameter struct {
	Name    string        `json:"name" yaml:"name"`
	Kind    ParameterKind `json:"kind" yaml:"kind"`
	Default float64       `json:"default" yaml:"default"`

	// Saved and Synced only matter for the menu's synchronized parameter set.
	Saved  bool `json:"saved,omitempty" yaml:"saved,omitempty"`
	Synced bool `json:"synced,omitempty" yaml:"synced,omitempty"`
}

// ParameterSpace holds at most one Parameter per name, in insertion order.
type ParameterSpace struct {
	Entries []Parameter `json:"entries" yaml:"entries"`
}

// NewParameterSpace returns an empty space.
func NewParameterSpace() *ParameterSpace {
	return &ParameterSpace{Entries: []Parameter{}}
}

// Lookup returns the entry with the given name, or nil.
// The pointer is only valid until the next Insert.
func (s *ParameterSpace) Lookup(name string) *Parameter {
	for i := range s.Entries {
		if s.Entries[i].Name == name {
			return &s.Entries[i]
		}
	}
	return nil
}

// Len returns the number of declared parameters.
func (s *ParameterSpace) Len() int {
	return len(s.Entries)
}

// Names returns parameter names in declaration order.
func (s *ParameterSpace) Names() []string {
	names := make([]string, 0, len(s.Entries))
	for _, p := range s.Entries {
		names = append(names, p.Name)
	}
	return names
}

// NamesOfKind returns the names of all parameters with the given kind.
func (s *ParameterSpace) NamesOfKind(kind ParameterKind) []string {
	var names []string
	for _, p := range s.Entries {
		if p.Kind == kind {
			names = append(names, p.Name)
		}
	}
	return names
}

// Insert appends p unless a parameter with the same name already exists.
// It returns a copy of the stored entry and whether it was newly added.
func (s *ParameterSpace) Insert(p Parameter) (Parameter, bool) {
	if existing := s.Lookup(p.Name); existing != nil {
		return *existing, false
	}
	s.Entries = append(s.Entries, p)
	return p, true
}
