package menu

import (
	"fmt"
	"strings"

	"github.com/aretw0/fxforge/pkg/domain"
)

// InsertControl adds control to the last page of target, allocating a new
// page first when that page is full. A control structurally equal to one
// already on the last page is dropped. The capacity check runs before the
// duplicate check. It reports whether the control was appended.
func (c *Composer) InsertControl(target *domain.Menu, control *domain.Control) (bool, error) {
	if target == nil {
		return false, domain.NewConfigurationError("insert_control", "", ErrNilMenu)
	}
	if control == nil {
		return false, domain.NewConfigurationError("insert_control", target.Name, ErrNilControl)
	}

	page := c.FindLastPage(target)
	if page.Len() >= c.capacity {
		var err error
		page, err = c.AllocatePage(target)
		if err != nil {
			return false, fmt.Errorf("insert control %q: %w", control.Name, err)
		}
	}

	for _, existing := range page.Controls {
		if existing.SameEntry(control) {
			c.logger.Debug("duplicate control ignored", "menu", target.Name, "control", control.Name)
			if c.hooks.OnDuplicateSuppressed != nil {
				c.hooks.OnDuplicateSuppressed(c.event(domain.EventDuplicateSuppressed, page, control.Name, 0))
			}
			return false, nil
		}
	}

	page.Controls = append(page.Controls, control)
	if c.hooks.OnControlInserted != nil {
		c.hooks.OnControlInserted(c.event(domain.EventControlInserted, page, control.Name, 0))
	}
	return true, nil
}

// ResolvePath walks root one submenu per path segment, creating missing
// submenus (inserted like any other control, so they may land on a
// continuation page). Segments match submenu controls by exact name across
// the container's whole page chain. Empty segments are ignored. It returns
// the container of the final segment, or root for an empty path.
func (c *Composer) ResolvePath(root *domain.Menu, path, delimiter string) (*domain.Menu, error) {
	if root == nil {
		return nil, domain.NewConfigurationError("resolve_path", path, ErrNilMenu)
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	current := root
	for _, segment := range strings.Split(path, delimiter) {
		if segment == "" {
			continue
		}

		link := findSubMenu(current, segment)
		switch {
		case link == nil:
			sub := domain.NewMenu(segment)
			if _, err := c.InsertControl(current, domain.SubMenuControl(segment, sub)); err != nil {
				return nil, fmt.Errorf("resolve %q: %w", path, err)
			}
			c.logger.Debug("submenu created", "parent", current.Name, "submenu", segment)
			current = sub
		case link.SubMenu == nil:
			link.SubMenu = domain.NewMenu(segment)
			current = link.SubMenu
		default:
			current = link.SubMenu
		}
	}
	return current, nil
}

// findSubMenu skips continuation links, so a folder may be called "Page 2".
func findSubMenu(container *domain.Menu, name string) *domain.Control {
	for _, page := range Pages(container) {
		for _, ctrl := range page.Controls {
			if _, isPage := ctrl.PageNumber(); isPage {
				continue
			}
			if ctrl.Name == name && ctrl.Kind == domain.ControlSubMenu {
				return ctrl
			}
		}
	}
	return nil
}

// AddControl resolves folderPath under root (using "/" as delimiter) and
// inserts a toggle that sets parameterName to value. It returns the resolved
// container.
func (c *Composer) AddControl(root *domain.Menu, folderPath, controlName, parameterName string, value float64) (*domain.Menu, error) {
	container := root
	if folderPath != "" {
		var err error
		container, err = c.ResolvePath(root, folderPath, DefaultDelimiter)
		if err != nil {
			return nil, err
		}
	}
	if _, err := c.InsertControl(container, domain.Toggle(controlName, parameterName, value)); err != nil {
		return container, err
	}
	return container, nil
}
