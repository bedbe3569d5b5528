package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/fxforge/internal/logging"
	"github.com/aretw0/fxforge/pkg/adapters/file"
	"github.com/aretw0/fxforge/pkg/adapters/memory"
	"github.com/aretw0/fxforge/pkg/adapters/redis"
	"github.com/aretw0/fxforge/pkg/adapters/sqlite"
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		b, err := OpenStore(ctx, StoreOptions{Kind: "memory"})
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, b.Store)
		assert.NoError(t, b.Close())
	})

	t.Run("File Is Default", func(t *testing.T) {
		dir := t.TempDir()
		b, err := OpenStore(ctx, StoreOptions{Dir: dir})
		require.NoError(t, err)
		require.IsType(t, &file.Store{}, b.Store)
		assert.Equal(t, dir, b.Store.(*file.Store).BasePath)
	})

	t.Run("SQLite", func(t *testing.T) {
		b, err := OpenStore(ctx, StoreOptions{Kind: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "p.db")})
		require.NoError(t, err)
		assert.IsType(t, &sqlite.Store{}, b.Store)
		assert.NoError(t, b.Close())
	})

	t.Run("Redis Has Locker", func(t *testing.T) {
		mr := miniredis.RunT(t)
		b, err := OpenStore(ctx, StoreOptions{Kind: "redis", RedisAddr: mr.Addr()})
		require.NoError(t, err)
		assert.IsType(t, &redis.Store{}, b.Store)
		assert.NotNil(t, b.Locker)
		assert.NoError(t, b.Close())
	})

	t.Run("Missing Settings", func(t *testing.T) {
		_, err := OpenStore(ctx, StoreOptions{Kind: "redis"})
		assert.Error(t, err)
		_, err = OpenStore(ctx, StoreOptions{Kind: "s3"})
		assert.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := OpenStore(ctx, StoreOptions{Kind: "floppy"})
		assert.ErrorIs(t, err, ErrUnknownStore)
	})
}

const manifestYAML = `
project: avatar
jobs:
  - kind: int
    layer: Outfit
    items: [Casual, Formal]
    menu: true
  - kind: control
    control: Wave
    parameter: Emote
    type: int
    value: 1
`

func TestRunApplyAndValidate(t *testing.T) {
	ctx := context.Background()
	env, err := NewEnv(ctx, WorkspaceOptions{Store: StoreOptions{Kind: "memory"}}, logging.NewNop())
	require.NoError(t, err)
	defer env.Close()

	path := filepath.Join(t.TempDir(), "avatar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0o644))

	var out bytes.Buffer
	require.NoError(t, RunApply(ctx, env, ApplyOptions{ManifestPath: path}, &out))
	assert.Contains(t, out.String(), "# avatar")
	assert.Contains(t, out.String(), "## int job on avatar")
	assert.Contains(t, out.String(), "## control job on avatar")

	out.Reset()
	require.NoError(t, ValidateProject(ctx, env, "avatar", &out))
	assert.Empty(t, out.String())

	// Break the layer by hand and store it back.
	project, err := env.Workspace.Load(ctx, "avatar")
	require.NoError(t, err)
	project.Controller.Layer("Outfit").Transitions = nil
	require.NoError(t, env.Workspace.Save(ctx, project))

	out.Reset()
	err = ValidateProject(ctx, env, "avatar", &out)
	require.Error(t, err)
	assert.Len(t, domain.ValidationErrors(err), 4)
	assert.Contains(t, out.String(), "not reachable")
}

func TestRunApply_ProjectOverrideAndMissing(t *testing.T) {
	ctx := context.Background()
	env, err := NewEnv(ctx, WorkspaceOptions{Store: StoreOptions{Kind: "memory"}, MenuCapacity: 4}, logging.NewNop())
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - {kind: control, control: A, parameter: A}\n"), 0o644))

	var out bytes.Buffer
	assert.ErrorIs(t, RunApply(ctx, env, ApplyOptions{ManifestPath: path}, &out), ErrNoProject)

	require.NoError(t, RunApply(ctx, env, ApplyOptions{ManifestPath: path, Project: "other"}, &out))
	ids, err := env.Workspace.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, ids)
}

func TestPrintMarkdown_PlainWhenNotTerminal(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintMarkdown(&out, "# Title\n"))
	assert.Equal(t, "# Title\n", out.String())
}
