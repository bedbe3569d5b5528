package menu

import (
	"fmt"

	"github.com/aretw0/fxforge/pkg/domain"
)

// FindLastPage follows "Page N" links from container and returns the last
// container of the chain. A container without a page link is its own last page.
func (c *Composer) FindLastPage(container *domain.Menu) *domain.Menu {
	pages := Pages(container)
	if len(pages) == 0 {
		return nil
	}
	return pages[len(pages)-1]
}

// Pages returns container followed by each continuation page, in order.
func Pages(container *domain.Menu) []*domain.Menu {
	if container == nil {
		return nil
	}
	pages := []*domain.Menu{container}
	seen := map[*domain.Menu]bool{container: true}
	current := container
	for {
		link, _ := current.PageLink()
		if link == nil || seen[link.SubMenu] {
			return pages
		}
		current = link.SubMenu
		seen[current] = true
		pages = append(pages, current)
	}
}

// nextPageNumber returns the number the next continuation page of origin
// takes. The origin is implicitly page 1.
func nextPageNumber(origin *domain.Menu) int {
	return len(Pages(origin)) + 1
}

// AllocatePage appends a continuation page to the chain starting at origin.
// The terminal page must be full: its last control moves onto the new page
// and the "Page N" link takes its slot, so a page that continues holds
// capacity-1 payload controls plus the link.
//
// Calling AllocatePage while the terminal page still has room is a contract
// breach and returns domain.ErrInvariantViolation without touching the tree.
func (c *Composer) AllocatePage(origin *domain.Menu) (*domain.Menu, error) {
	if origin == nil {
		return nil, domain.NewConfigurationError("allocate_page", "", ErrNilMenu)
	}

	last := c.FindLastPage(origin)
	if last.Len() < c.capacity {
		return nil, fmt.Errorf("%w: allocate page on %q with %d/%d controls",
			domain.ErrInvariantViolation, last.Name, last.Len(), c.capacity)
	}

	n := nextPageNumber(origin)
	page := domain.NewMenu(domain.PageLinkName(n))

	bumped := last.Controls[len(last.Controls)-1]
	last.Controls = last.Controls[:len(last.Controls)-1]
	page.Controls = append(page.Controls, bumped)
	last.Controls = append(last.Controls, domain.PageLinkControl(n, page))

	c.logger.Debug("menu is full, adding page", "menu", origin.Name, "page", n, "bumped", bumped.Name)
	if c.hooks.OnPageAllocated != nil {
		c.hooks.OnPageAllocated(c.event(domain.EventPageAllocated, origin, bumped.Name, n))
	}
	return page, nil
}
