package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/focus/internal/store"
	"github.com/AbdelazizMoustafa10m/focus/internal/tui"
)

// resetRootCmd puts every flag of every command back to its default and
// clears Cobra's "Changed" tracking, detaches test I/O, and moves the test
// into an empty directory so no focus.toml is discovered. It must be called
// at the start of every test that executes rootCmd.
func resetRootCmd(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())

	var reset func(cmd *cobra.Command)
	reset = func(cmd *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{cmd.PersistentFlags(), cmd.Flags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		for _, child := range cmd.Commands() {
			reset(child)
		}
	}
	reset(rootCmd)

	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// executeRoot runs rootCmd with args and captures its output streams.
func executeRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// uiLaunch records what runUI handed to the TUI.
type uiLaunch struct {
	called bool
	cfg    tui.AppConfig
	store  *store.Store
}

// stubUI replaces the TUI launcher for the duration of the test.
func stubUI(t *testing.T) *uiLaunch {
	t.Helper()
	got := &uiLaunch{}
	orig := launchUI
	launchUI = func(_ context.Context, cfg tui.AppConfig, st *store.Store) error {
		got.called = true
		got.cfg = cfg
		got.store = st
		return nil
	}
	t.Cleanup(func() { launchUI = orig })
	return got
}

// writeConfig writes a focus.toml with the given content into the current
// directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path, err := filepath.Abs("focus.toml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_Metadata(t *testing.T) {
	assert.Equal(t, "focus", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "task list")
	assert.Contains(t, rootCmd.Long, "Nothing is saved")
	assert.True(t, rootCmd.SilenceUsage, "SilenceUsage must be true")
	assert.True(t, rootCmd.SilenceErrors, "SilenceErrors must be true")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := []struct {
		flagName  string
		shorthand string
		envHint   string
	}{
		{flagName: "verbose", shorthand: "v", envHint: "FOCUS_VERBOSE"},
		{flagName: "quiet", shorthand: "q", envHint: "FOCUS_QUIET"},
		{flagName: "config"},
		{flagName: "dir"},
		{flagName: "no-color", envHint: "NO_COLOR"},
		{flagName: "filter", envHint: "FOCUS_DEFAULT_FILTER"},
		{flagName: "id-gen", envHint: "FOCUS_ID_GENERATOR"},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "persistent flag %q must be registered", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			if tt.envHint != "" {
				assert.Contains(t, flag.Usage, tt.envHint)
			}
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"ui", "run", "config", "init", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestExecute_NoSubcommand_LaunchesUI(t *testing.T) {
	resetRootCmd(t)
	got := stubUI(t)
	rootCmd.SetArgs([]string{})

	code := Execute()

	assert.Equal(t, 0, code)
	require.True(t, got.called)
	assert.Equal(t, "Focus Tasks", got.cfg.Title)
	assert.Equal(t, "Add a new task...", got.cfg.Placeholder)
	assert.True(t, got.cfg.ShowProgress)
	assert.False(t, got.cfg.ConfirmClear)
	assert.Equal(t, store.FilterAll, got.store.Filter())
	assert.Equal(t, 0, got.store.Len())
}

func TestExecute_UnknownSubcommand_ReturnsError(t *testing.T) {
	resetRootCmd(t)
	stubUI(t)

	_, _, err := executeRoot(t, "nonexistent-command")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestExecute_HelpFlag(t *testing.T) {
	resetRootCmd(t)
	got := stubUI(t)

	out, _, err := executeRoot(t, "--help")
	require.NoError(t, err)
	assert.False(t, got.called, "--help must not open the UI")

	assert.Contains(t, out, "Usage:")
	for _, flag := range []string{"--verbose", "--quiet", "--config", "--dir", "--no-color", "--filter", "--id-gen", "-v", "-q"} {
		assert.Contains(t, out, flag, "help output should contain %q", flag)
	}
}

func TestPersistentPreRunE_Flags(t *testing.T) {
	resetRootCmd(t)

	_, _, err := executeRoot(t, "--verbose", "--quiet", "--no-color", "version")
	require.NoError(t, err)
	assert.True(t, flagVerbose)
	assert.True(t, flagQuiet)
	assert.True(t, flagNoColor)
}

func TestPersistentPreRunE_EnvVars(t *testing.T) {
	tests := []struct {
		env  string
		flag *bool
	}{
		{env: "FOCUS_VERBOSE", flag: &flagVerbose},
		{env: "FOCUS_QUIET", flag: &flagQuiet},
		{env: "FOCUS_NO_COLOR", flag: &flagNoColor},
		{env: "NO_COLOR", flag: &flagNoColor},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			resetRootCmd(t)
			t.Setenv(tt.env, "1")

			_, _, err := executeRoot(t, "version")
			require.NoError(t, err)
			assert.True(t, *tt.flag, "%s should set the flag", tt.env)
		})
	}
}

func TestPersistentPreRunE_DirFlag(t *testing.T) {
	resetRootCmd(t)
	target := t.TempDir()

	_, _, err := executeRoot(t, "--dir", target, "version")
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	resolvedCwd, err := filepath.EvalSymlinks(cwd)
	require.NoError(t, err)
	resolvedTarget, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, resolvedTarget, resolvedCwd)
}

func TestPersistentPreRunE_DirFlag_Invalid(t *testing.T) {
	resetRootCmd(t)

	_, _, err := executeRoot(t, "--dir", "/nonexistent/path/that/does/not/exist", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changing directory to")
}

func TestNewRootCmd_CarriesFlagsAndCommands(t *testing.T) {
	t.Cleanup(func() {
		// NewRootCmd reparents the shared subcommands; hand them back.
		for _, c := range slices.Clone(rootCmd.Commands()) {
			rootCmd.RemoveCommand(c)
			rootCmd.AddCommand(c)
		}
	})

	cmd := NewRootCmd()
	assert.Equal(t, "focus", cmd.Use)
	for _, name := range []string{"verbose", "quiet", "config", "dir", "no-color", "filter", "id-gen"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %q", name)
	}
	assert.Len(t, cmd.Commands(), len(rootCmd.Commands()))

	// The generator tree has its own flag storage.
	require.NoError(t, cmd.PersistentFlags().Set("filter", "done"))
	assert.Empty(t, flagFilter)
}
