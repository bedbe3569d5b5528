package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_ApplyThenInspect(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "projects")
	manifestPath := filepath.Join(dir, "avatar.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`
project: avatar
jobs:
  - kind: bool
    layer: Props
    items: [Hat, Cape]
    menu: true
`), 0o644))

	store := []string{"--store", "file", "--dir", storeDir, "--log-level", "error"}

	out, err := run(t, append([]string{"apply", manifestPath}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "## bool job on avatar")

	out, err = run(t, append([]string{"list"}, store...)...)
	require.NoError(t, err)
	assert.Equal(t, "avatar\n", out)

	out, err = run(t, append([]string{"menu", "avatar", "--format", "tree"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Hat (Hat = 0)")

	out, err = run(t, append([]string{"graph", "avatar", "--layer", "Props"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "stateDiagram-v2")

	out, err = run(t, append([]string{"validate", "avatar"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Project is valid!")

	out, err = run(t, append([]string{"show", "avatar"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "| Props | 3 | 4 | ok |")

	_, err = run(t, append([]string{"graph", "avatar", "--layer", "Nope"}, store...)...)
	assert.Error(t, err)
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fxforge version")
}

func TestCLI_UnknownStore(t *testing.T) {
	_, err := run(t, "list", "--store", "floppy")
	assert.Error(t, err)
}
