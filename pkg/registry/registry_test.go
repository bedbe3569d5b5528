package registry_test

import (
	"errors"
	"testing"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsure_CreatesOnce(t *testing.T) {
	space := domain.NewParameterSpace()

	p, err := registry.Ensure(space, "Hat", domain.KindBool)
	require.NoError(t, err)
	assert.Equal(t, "Hat", p.Name)
	assert.Equal(t, domain.KindBool, p.Kind)
	assert.Zero(t, p.Default)

	_, err = registry.Ensure(space, "Hat", domain.KindBool)
	require.NoError(t, err)
	assert.Equal(t, 1, space.Len())
}

func TestEnsure_FirstDeclarationWins(t *testing.T) {
	space := domain.NewParameterSpace()
	_, err := registry.Ensure(space, "Outfit", domain.KindInt)
	require.NoError(t, err)

	p, err := registry.Ensure(space, "Outfit", domain.KindBool)
	require.NoError(t, err, "mismatched re-declaration is a no-op, not an error")
	assert.Equal(t, domain.KindInt, p.Kind)
	assert.Equal(t, 1, space.Len())
}

func TestEnsure_NilSpace(t *testing.T) {
	_, err := registry.Ensure(nil, "Hat", domain.KindBool)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrNilSpace)
}

func TestEnsure_SyncedOptionOnlyOnCreate(t *testing.T) {
	space := domain.NewParameterSpace()
	_, err := registry.Ensure(space, "Plain", domain.KindBool)
	require.NoError(t, err)

	p, err := registry.Ensure(space, "Plain", domain.KindBool, registry.Synced())
	require.NoError(t, err)
	assert.False(t, p.Synced, "options must not touch existing entries")

	p, err = registry.Ensure(space, "Menu", domain.KindInt, registry.Synced(), registry.WithDefault(2))
	require.NoError(t, err)
	assert.True(t, p.Saved)
	assert.True(t, p.Synced)
	assert.Equal(t, 2.0, p.Default)
}

func TestEnsureKind_Mismatch(t *testing.T) {
	space := domain.NewParameterSpace()
	_, _ = registry.Ensure(space, "Outfit", domain.KindBool)

	p, err := registry.EnsureKind(space, "Outfit", domain.KindInt)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	var mismatch *registry.KindMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, domain.KindInt, mismatch.Want)
	assert.Equal(t, domain.KindBool, mismatch.Got)
	assert.Equal(t, domain.KindBool, p.Kind)
}
