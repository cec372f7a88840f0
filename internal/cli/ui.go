package cli

import (
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/focus/internal/buildinfo"
	"github.com/AbdelazizMoustafa10m/focus/internal/logging"
	"github.com/AbdelazizMoustafa10m/focus/internal/tui"
)

// launchUI starts the interactive program. Tests replace it to avoid
// taking over the terminal.
var launchUI = tui.RunTUI

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the full-screen task list",
	Long: `Open the interactive Focus task list. This is also what runs when
focus is invoked without a subcommand.

Type a task and press Enter to add it. Press Tab to move between the input
line and the list, and ? for all keyboard shortcuts.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

// runUI is the RunE handler for the ui command and the bare root command.
// It resolves configuration, moves logging off the terminal, builds an
// empty store and hands both to the TUI.
func runUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSessionConfig()
	if err != nil {
		return err
	}

	// Child loggers copy the output at creation, so redirect before the
	// store and the TUI create theirs.
	restore, err := logging.Redirect(cfg.Log.File)
	if err != nil {
		return err
	}
	defer restore()

	st, err := newStore(cfg)
	if err != nil {
		return err
	}

	info := buildinfo.GetInfo()
	appCfg := tui.AppConfig{
		Version:      info.Version,
		Title:        cfg.UI.Title,
		Subtitle:     cfg.UI.Subtitle,
		Placeholder:  cfg.UI.Placeholder,
		ConfirmClear: cfg.UI.ConfirmClearEnabled(),
		ShowProgress: cfg.UI.ShowProgressEnabled(),
	}

	logging.New("cli").Info("launching task list",
		"version", info.Version,
		"filter", st.Filter(),
	)

	return launchUI(cmd.Context(), appCfg, st)
}
