package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControl_PageNumber(t *testing.T) {
	page := domain.NewMenu("Page 3")

	link := domain.PageLinkControl(3, page)
	assert.Equal(t, "Page 3", link.Name)
	n, ok := link.PageNumber()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = domain.PageLinkControl(3, nil).PageNumber()
	assert.False(t, ok, "a link without a target is not a page link")

	_, ok = domain.SubMenuControl("Page 3", page).PageNumber()
	assert.False(t, ok, "a folder named like a page is not a page link")

	_, ok = domain.Toggle("Page 3", "p", 0).PageNumber()
	assert.False(t, ok)
}

func TestControl_SameEntry(t *testing.T) {
	a := domain.Toggle("Wave", "Wave", 0)
	assert.True(t, a.SameEntry(domain.Toggle("Wave", "Wave", 0)))
	assert.False(t, a.SameEntry(domain.Toggle("Wave", "Wave", 1)))
	assert.False(t, a.SameEntry(domain.Toggle("Wave", "Other", 0)))
	assert.False(t, a.SameEntry(domain.SubMenuControl("Wave", nil)))
}

func TestMenu_NewMenuHasUniqueHandle(t *testing.T) {
	a, b := domain.NewMenu("x"), domain.NewMenu("x")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMenu_WalkStopsOnCycles(t *testing.T) {
	root := domain.NewMenu("root")
	sub := domain.NewMenu("sub")
	root.Controls = append(root.Controls, domain.SubMenuControl("sub", sub))
	sub.Controls = append(sub.Controls, domain.SubMenuControl("back", root))

	var visited []string
	root.Walk(func(m *domain.Menu, depth int) bool {
		visited = append(visited, m.Name)
		return true
	})
	assert.Equal(t, []string{"root", "sub"}, visited)
}

func TestMenu_JSONKeepsTree(t *testing.T) {
	root := domain.NewMenu("root")
	sub := domain.NewMenu("Sounds")
	sub.Controls = append(sub.Controls, domain.Toggle("Moo", "Moo", 1))
	root.Controls = append(root.Controls, domain.SubMenuControl("Sounds", sub))

	data, err := json.Marshal(root)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"submenu"`)

	var decoded domain.Menu
	require.NoError(t, json.Unmarshal(data, &decoded))
	link := decoded.Find("Sounds", domain.ControlSubMenu)
	require.NotNil(t, link)
	require.NotNil(t, link.SubMenu)
	assert.Equal(t, domain.ControlToggle, link.SubMenu.Controls[0].Kind)
	assert.Equal(t, float64(1), link.SubMenu.Controls[0].Value)
}

func TestControl_PageLinkSurvivesJSON(t *testing.T) {
	root := domain.NewMenu("root")
	root.Controls = append(root.Controls, domain.PageLinkControl(2, domain.NewMenu("Page 2")))

	data, err := json.Marshal(root)
	require.NoError(t, err)
	var back domain.Menu
	require.NoError(t, json.Unmarshal(data, &back))

	_, n := back.PageLink()
	assert.Equal(t, 2, n)
}
