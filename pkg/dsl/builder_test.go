package dsl

import (
	"testing"

	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_DeclarationOrder(t *testing.T) {
	b := New()

	b.Int("Outfit").
		Parameter("OutfitIndex").
		Clip("Casual", "Casual.anim").
		Empty("Retired").
		Clip("Formal", "Formal.anim").
		InMenu("Outfits")

	b.Overlay("Jacket").
		Selector("OutfitIndex").
		Enable("JacketOn").
		Clip(1, "Open", "Open.anim").
		InMenu("")

	b.Bool("Props").Clip("Hat", "Hat.anim")
	b.Control("Wave").Sets("Emote", domain.KindInt, 3).In("Emotes")

	jobs, err := b.Build()
	require.NoError(t, err)
	require.Len(t, jobs, 4)

	ij := jobs[0].(*fxforge.IntJob)
	assert.Equal(t, "OutfitIndex", ij.Parameter)
	require.Len(t, ij.Items, 3)
	assert.Nil(t, ij.Items[1].Clip)
	assert.Equal(t, "Outfits", ij.Menu.Path)

	oj := jobs[1].(*fxforge.OverlayJob)
	assert.Equal(t, "JacketOn", oj.Enable)
	assert.Equal(t, 1, oj.Items[0].Group)
	assert.NotNil(t, oj.Menu)

	bj := jobs[2].(*fxforge.BoolJob)
	assert.Nil(t, bj.Menu)

	cj := jobs[3].(*fxforge.ControlJob)
	assert.Equal(t, fxforge.ControlJob{Path: "Emotes", Control: "Wave", Parameter: "Emote", Type: domain.KindInt, Value: 3}, *cj)
}

func TestBuilder_SameLayerReusesBuilder(t *testing.T) {
	b := New()
	b.Bool("Props").Clip("Hat", "")
	b.Bool("Props").Clip("Wings", "")
	b.PerClip("toggles").Clip("Glow", "")

	jobs, err := b.Build()
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Len(t, jobs[0].(*fxforge.BoolJob).Items, 2)
	assert.True(t, jobs[1].(*fxforge.BoolJob).PerClip)
}

func TestBuilder_ControlsAreNeverMerged(t *testing.T) {
	b := New()
	b.Control("Wave").Sets("Emote", domain.KindInt, 1)
	b.Control("Wave").Sets("Emote", domain.KindInt, 2)

	jobs, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestBuilder_IncompleteJobs(t *testing.T) {
	b := New()
	b.Overlay("Jacket")
	b.Control("Wave")
	b.Int("")

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteJob)
	assert.Contains(t, err.Error(), "selector is required")
	assert.Contains(t, err.Error(), "parameter is required")
	assert.Contains(t, err.Error(), "layer is required")
}

func TestBuilder_AppliesEndToEnd(t *testing.T) {
	b := New()
	b.Int("Outfit").Clip("A", "").Clip("B", "")
	b.Overlay("Jacket").Selector("Outfit").Clip(2, "Open", "").InMenu("")

	jobs, err := b.Build()
	require.NoError(t, err)

	project := domain.NewProject("p")
	forge := fxforge.New()
	for _, j := range jobs {
		_, err := forge.Apply(project, j)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Outfit", "Jacket"}, project.Controller.LayerNames())
	assert.NoError(t, project.Controller.Validate())
}
