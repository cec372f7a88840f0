package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/focus/internal/buildinfo"
	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

func TestUICmd_UsesResolvedConfig(t *testing.T) {
	resetRootCmd(t)
	got := stubUI(t)
	writeConfig(t, `
[ui]
title = "Sprint 12"
subtitle = "Ship it"
confirm_clear = true
show_progress = false
default_filter = "active"
`)

	_, _, err := executeRoot(t, "ui")
	require.NoError(t, err)
	require.True(t, got.called)

	assert.Equal(t, "Sprint 12", got.cfg.Title)
	assert.Equal(t, "Ship it", got.cfg.Subtitle)
	assert.True(t, got.cfg.ConfirmClear)
	assert.False(t, got.cfg.ShowProgress)
	assert.Equal(t, buildinfo.GetInfo().Version, got.cfg.Version)
	assert.Equal(t, store.FilterActive, got.store.Filter())
}

func TestUICmd_FlagsOverrideConfig(t *testing.T) {
	resetRootCmd(t)
	got := stubUI(t)
	writeConfig(t, "[ui]\ndefault_filter = \"active\"\n")

	_, _, err := executeRoot(t, "--filter", "done", "--id-gen", "hash")
	require.NoError(t, err)
	require.True(t, got.called)
	assert.Equal(t, store.FilterDone, got.store.Filter())

	task, ok := got.store.AddTask("x")
	require.True(t, ok)
	assert.Len(t, task.ID, 16, "hash ids are 16 hex digits")
}

func TestUICmd_EnvOverridesFile(t *testing.T) {
	resetRootCmd(t)
	got := stubUI(t)
	writeConfig(t, "[ui]\ntitle = \"From file\"\n")
	t.Setenv("FOCUS_TITLE", "From env")

	_, _, err := executeRoot(t)
	require.NoError(t, err)
	assert.Equal(t, "From env", got.cfg.Title)
}

func TestUICmd_InvalidConfigDoesNotLaunch(t *testing.T) {
	resetRootCmd(t)
	got := stubUI(t)

	_, _, err := executeRoot(t, "--filter", "archived")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "ui.default_filter")
	assert.False(t, got.called)
}

func TestUICmd_MalformedConfigFile(t *testing.T) {
	resetRootCmd(t)
	got := stubUI(t)
	writeConfig(t, "[ui\ntitle = ")

	_, _, err := executeRoot(t, "ui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.False(t, got.called)
}
