package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contractProject builds a project touching every persisted field.
func contractProject(id string) *domain.Project {
	p := domain.NewProject(id)
	p.Controller.Parameters.Insert(domain.Parameter{Name: "Outfit", Kind: domain.KindInt})
	p.Controller.Parameters.Insert(domain.Parameter{Name: "Jacket", Kind: domain.KindBool})

	l, _ := p.Controller.EnsureLayer("Jacket")
	_, _ = l.AddState("Default", nil)
	st, _ := l.AddState("1_Open", &domain.Clip{Name: "Open", Path: "parts/1.Casual/Open.anim"})
	st.WriteDefaults = true
	_ = l.AddTransition(domain.AnyState, "1_Open", domain.Equals("Outfit", 1), domain.If("Jacket"))
	_ = l.AddTransition("1_Open", "Default", domain.IfNot("Jacket"))

	sub := domain.NewMenu("Parts")
	sub.Controls = append(sub.Controls, domain.Toggle("Jacket", "Jacket", 0))
	p.Menu.Controls = append(p.Menu.Controls, domain.SubMenuControl("Parts", sub))
	p.MenuParameters.Insert(domain.Parameter{Name: "Jacket", Kind: domain.KindBool, Saved: true, Synced: true})
	return p
}

// RunProjectStoreContract runs a suite of tests to verify that a ProjectStore
// implementation adheres to the defined interface contract.
func RunProjectStoreContract(t *testing.T, store ProjectStore) {
	ctx := context.Background()
	projectID := "contract-test-project-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		project := contractProject(projectID)

		err := store.Save(ctx, project)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, projectID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, projectID, loaded.ID)

		layer := loaded.Controller.Layer("Jacket")
		require.NotNil(t, layer)
		assert.Equal(t, project.Controller.Layers[0].Transitions, layer.Transitions)
		assert.True(t, layer.State("1_Open").WriteDefaults)
		assert.Equal(t, "parts/1.Casual/Open.anim", layer.State("1_Open").Motion.Path)
		assert.Equal(t, domain.KindInt, loaded.Controller.Parameters.Lookup("Outfit").Kind)

		parts := loaded.Menu.Find("Parts", domain.ControlSubMenu)
		require.NotNil(t, parts, "menu tree should survive persistence")
		require.NotNil(t, parts.SubMenu)
		assert.Equal(t, project.Menu.Controls[0].SubMenu.ID, parts.SubMenu.ID)
		assert.Equal(t, domain.Toggle("Jacket", "Jacket", 0), parts.SubMenu.Controls[0])
		assert.True(t, loaded.MenuParameters.Lookup("Jacket").Synced)
		assert.NoError(t, loaded.Controller.Validate())
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		project := contractProject(projectID)
		project.Menu.Controls = append(project.Menu.Controls, domain.Toggle("Wave", "Wave", 0))
		require.NoError(t, store.Save(ctx, project))

		loaded, err := store.Load(ctx, projectID)
		require.NoError(t, err)
		assert.Len(t, loaded.Menu.Controls, 2)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+projectID)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, domain.NewProject(projectID))
		require.NoError(t, err)

		err = store.Delete(ctx, projectID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, projectID)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound, "Load after Delete should return ErrProjectNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := projectID + "-1"
		id2 := projectID + "-2"
		_ = store.Save(ctx, domain.NewProject(id1))
		_ = store.Save(ctx, domain.NewProject(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
