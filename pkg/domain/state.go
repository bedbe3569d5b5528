package domain

// Clip is an opaque reference to an animation asset owned by the host.
type Clip struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// NamedClip is one caller-supplied item. Clip may be nil; a nil clip still
// occupies its position in the list.
type NamedClip struct {
	Name string `json:"name" yaml:"name"`
	Clip *Clip  `json:"clip,omitempty" yaml:"clip,omitempty"`
}

// Item builds a NamedClip whose clip shares the item name.
func Item(name, path string) NamedClip {
	return NamedClip{Name: name, Clip: &Clip{Name: name, Path: path}}
}

// EmptyItem builds a placeholder that consumes a position but creates no state.
func EmptyItem(name string) NamedClip {
	return NamedClip{Name: name}
}

// GroupedClip is a NamedClip tagged with an external selector value,
// typically taken from a "N.name" folder prefix.
type GroupedClip struct {
	Group     int `json:"group" yaml:"group"`
	NamedClip `yaml:",inline"`
}

// State is a node of a layer's state machine.
type State struct {
	Name   string `json:"name" yaml:"name"`
	Motion *Clip  `json:"motion,omitempty" yaml:"motion,omitempty"`

	// Default marks the layer's idle state. Exactly one per layer.
	Default bool `json:"default,omitempty" yaml:"default,omitempty"`

	WriteDefaults bool `json:"write_defaults,omitempty" yaml:"write_defaults,omitempty"`
}
