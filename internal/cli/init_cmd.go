package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/focus/internal/config"
	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

// Flag values for the init subcommand.
var (
	initFlagTitle        string
	initFlagConfirmClear bool
	initFlagForce        bool
)

// initCmd implements "focus init".
// It writes a starter focus.toml without reading any existing config, so it
// is safe to run in a fresh directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter focus.toml",
	Long: `Write a commented starter focus.toml to the current directory.
An existing file is preserved unless --force is supplied.

The global --filter and --id-gen flags, when given, are written into the
new file.

Examples:
  focus init                            # defaults
  focus init --title "Sprint 12"        # custom title
  focus init --id-gen uuid --force      # overwrite with uuid ids`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initFlagTitle, "title", "", "Title shown above the list (defaults to \"Focus Tasks\")")
	initCmd.Flags().BoolVar(&initFlagConfirmClear, "confirm-clear", false, "Ask before clearing completed tasks")
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite an existing focus.toml")
	rootCmd.AddCommand(initCmd)
}

// runInit is the RunE handler for the init command.
func runInit(cmd *cobra.Command, _ []string) error {
	vars := config.DefaultTemplateVars()
	if initFlagTitle != "" {
		vars.Title = initFlagTitle
	}
	if initFlagConfirmClear {
		vars.ConfirmClear = true
	}

	o := cliOverrides()
	if o.DefaultFilter != nil {
		filter, err := store.ParseFilter(*o.DefaultFilter)
		if err != nil {
			return fmt.Errorf("--filter: %w", err)
		}
		vars.DefaultFilter = string(filter)
	}
	if o.IDGenerator != nil {
		if _, err := store.NewGenerator(*o.IDGenerator, ""); err != nil {
			return fmt.Errorf("--id-gen: %w", err)
		}
		vars.IDGenerator = *o.IDGenerator
	}

	// Resolve the destination directory (current working directory after any
	// --dir change applied in PersistentPreRunE).
	destDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	path, created, err := config.WriteConfig(destDir, vars, initFlagForce)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if !created {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Adjust the [ui] section to taste")
	fmt.Fprintln(out, "  2. Check it with: focus config validate")
	fmt.Fprintln(out, "  3. Run: focus")
	return nil
}
