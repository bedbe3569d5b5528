package domain

import (
	"fmt"
	"strconv"

	"github.com/rs/xid"
)

// ControlKind distinguishes leaf toggles from links to other containers.
type ControlKind int

const (
	ControlToggle ControlKind = iota + 1
	ControlSubMenu
)

func (k ControlKind) String() string {
	switch k {
	case ControlToggle:
		return "toggle"
	case ControlSubMenu:
		return "submenu"
	default:
		return fmt.Sprintf("control(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ControlKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ControlKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "toggle":
		*k = ControlToggle
	case "submenu":
		*k = ControlSubMenu
	default:
		return fmt.Errorf("unknown control kind: %q", text)
	}
	return nil
}

// Control is one entry of a Menu page.
// Toggles carry Parameter and Value; submenu links carry SubMenu.
// Page is set only on continuation links.
type Control struct {
	Name      string      `json:"name" yaml:"name"`
	Kind      ControlKind `json:"kind" yaml:"kind"`
	Parameter string      `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	Value     float64     `json:"value,omitempty" yaml:"value,omitempty"`
	SubMenu   *Menu       `json:"submenu,omitempty" yaml:"submenu,omitempty"`
	Page      int         `json:"page,omitempty" yaml:"page,omitempty"`
}

// Toggle builds a toggle control that sets parameter to value.
func Toggle(name, parameter string, value float64) *Control {
	return &Control{Name: name, Kind: ControlToggle, Parameter: parameter, Value: value}
}

// SubMenuControl builds a link to another container.
func SubMenuControl(name string, sub *Menu) *Control {
	return &Control{Name: name, Kind: ControlSubMenu, SubMenu: sub}
}

// PageLinkControl builds the "Page n" continuation link to page.
func PageLinkControl(n int, page *Menu) *Control {
	return &Control{Name: PageLinkName(n), Kind: ControlSubMenu, SubMenu: page, Page: n}
}

// SameEntry reports structural identity on (name, kind, parameter, value).
func (c *Control) SameEntry(other *Control) bool {
	return c.Name == other.Name &&
		c.Kind == other.Kind &&
		c.Parameter == other.Parameter &&
		c.Value == other.Value
}

// PageLinkName returns the control name linking to page n.
func PageLinkName(n int) string {
	return "Page " + strconv.Itoa(n)
}

// PageNumber returns n when the control is a continuation link with a target
// container. A submenu that is merely named "Page n" is not one.
func (c *Control) PageNumber() (int, bool) {
	if c.Kind != ControlSubMenu || c.SubMenu == nil || c.Page < 1 {
		return 0, false
	}
	return c.Page, true
}

// Menu is a container of controls: a top-level menu, a named submenu, or an
// overflow page of another container.
type Menu struct {
	ID       string     `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Controls []*Control `json:"controls" yaml:"controls"`
}

// NewMenu creates an empty container with a fresh handle.
func NewMenu(name string) *Menu {
	return &Menu{
		ID:       xid.New().String(),
		Name:     name,
		Controls: []*Control{},
	}
}

// Len returns the number of controls on this page.
func (m *Menu) Len() int {
	return len(m.Controls)
}

// Find returns the first control with the given name and kind on this page.
func (m *Menu) Find(name string, kind ControlKind) *Control {
	for _, c := range m.Controls {
		if c.Name == name && c.Kind == kind {
			return c
		}
	}
	return nil
}

// PageLink returns the first "Page n" link on this page, if any.
func (m *Menu) PageLink() (*Control, int) {
	for _, c := range m.Controls {
		if n, ok := c.PageNumber(); ok {
			return c, n
		}
	}
	return nil, 0
}

// Walk visits m and every container reachable from it, depth first.
// Returning false from fn stops descent below that container.
func (m *Menu) Walk(fn func(menu *Menu, depth int) bool) {
	m.walk(fn, 0, map[*Menu]bool{})
}

func (m *Menu) walk(fn func(*Menu, int) bool, depth int, seen map[*Menu]bool) {
	if seen[m] {
		return
	}
	seen[m] = true
	if !fn(m, depth) {
		return
	}
	for _, c := range m.Controls {
		if c.SubMenu != nil {
			c.SubMenu.walk(fn, depth+1, seen)
		}
	}
}
