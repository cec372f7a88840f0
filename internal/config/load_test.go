package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates dir/name with the given content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const fullConfig = `
[ui]
title = "Sprint Board"
subtitle = "Today only"
placeholder = "What next?"
default_filter = "active"
confirm_clear = true
show_progress = false

[store]
id_generator = "uuid"
id_prefix = "task-"

[log]
level = "debug"
file = "/tmp/focus.log"
`

// --- LoadFromFile tests ---

func TestLoadFromFile_ValidFull(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), ConfigFileName, fullConfig)

	cfg, md, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Sprint Board", cfg.UI.Title)
	assert.Equal(t, "Today only", cfg.UI.Subtitle)
	assert.Equal(t, "What next?", cfg.UI.Placeholder)
	assert.Equal(t, "active", cfg.UI.DefaultFilter)
	require.NotNil(t, cfg.UI.ConfirmClear)
	assert.True(t, *cfg.UI.ConfirmClear)
	require.NotNil(t, cfg.UI.ShowProgress)
	assert.False(t, *cfg.UI.ShowProgress)

	assert.Equal(t, "uuid", cfg.Store.IDGenerator)
	assert.Equal(t, "task-", cfg.Store.IDPrefix)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/focus.log", cfg.Log.File)

	assert.Empty(t, md.Undecoded(), "expected no undecoded keys for a valid config")
}

func TestLoadFromFile_PartialLeavesZeroValues(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), ConfigFileName, "[ui]\ntitle = \"Only title\"\n")

	cfg, _, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Only title", cfg.UI.Title)
	assert.Empty(t, cfg.UI.DefaultFilter)
	assert.Nil(t, cfg.UI.ConfirmClear)
	assert.Nil(t, cfg.UI.ShowProgress)
	assert.Empty(t, cfg.Store.IDGenerator)
}

func TestLoadFromFile_UnknownKeysReported(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), ConfigFileName, "[ui]\ntheme = \"neon\"\n\n[sync]\nenabled = true\n")

	_, md, err := LoadFromFile(path)
	require.NoError(t, err)

	var keys []string
	for _, k := range md.Undecoded() {
		keys = append(keys, k.String())
	}
	assert.Contains(t, keys, "ui.theme")
	assert.Contains(t, keys, "sync.enabled")
}

func TestLoadFromFile_InvalidTOML(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), ConfigFileName, "[ui\ntitle = ")

	cfg, _, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "loading config")
}

func TestLoadFromFile_Missing(t *testing.T) {
	t.Parallel()
	_, _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

// --- FindConfigFile tests ---

func TestFindConfigFile_InStartDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	want := writeFile(t, dir, ConfigFileName, "")

	got, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigFile_WalksUp(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	want := writeFile(t, root, ConfigFileName, "")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigFile_HiddenVariant(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	want := writeFile(t, dir, HiddenConfigFileName, "")

	got, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigFile_PrefersVisibleName(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, HiddenConfigFileName, "")
	want := writeFile(t, dir, ConfigFileName, "")

	got, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigFile_NearestWins(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, ConfigFileName, "")
	child := filepath.Join(root, "child")
	want := writeFile(t, child, HiddenConfigFileName, "")

	got, err := FindConfigFile(child)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigFile_IgnoresDirectoryNamedLikeConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ConfigFileName), 0o755))

	name, err := configFileIn(dir)
	require.NoError(t, err)
	assert.Empty(t, name)
}
