package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/focus/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagDir     string
	flagNoColor bool
	flagFilter  string
	flagIDGen   string
)

// rootCmd is the base command for Focus.
var rootCmd = &cobra.Command{
	Use:   "focus",
	Short: "A keyboard-driven task list for the rest of your day",
	Long: `Focus is a small, in-memory task list. Type a task, check it off,
filter by status and clear what is done. Nothing is saved: the list lives
only as long as the process.

Run without a subcommand to open the full-screen list, or use "focus run"
to drive the same list from a script.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// When invoked with no subcommand, launch the interactive list.
	// Help is still available via `focus --help` / `focus -h`.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd, args)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("FOCUS_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("FOCUS_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("FOCUS_NO_COLOR") != "") {
			flagNoColor = true
		}

		// Initialize logging. The configured level is applied later, once
		// the config file has been read.
		if err := logging.Setup(logOptions("")); err != nil {
			return err
		}

		// Handle --no-color: disable colored output.
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		// Handle --dir (change working directory).
		if flagDir != "" {
			if err := os.Chdir(flagDir); err != nil {
				return fmt.Errorf("changing directory to %s: %w", flagDir, err)
			}
		}

		return nil
	},
}

func init() {
	registerPersistentFlags(rootCmd, true)
}

// registerPersistentFlags adds the global flags to cmd. When bind is true
// the flags write to the package-level variables; otherwise they get local
// storage so generator trees do not share state with rootCmd.
func registerPersistentFlags(cmd *cobra.Command, bind bool) {
	var (
		verbose, quiet, noColor       bool
		cfg, dir, filter, idGenerator string
	)
	pVerbose, pQuiet, pNoColor := &verbose, &quiet, &noColor
	pConfig, pDir, pFilter, pIDGen := &cfg, &dir, &filter, &idGenerator
	if bind {
		pVerbose, pQuiet, pNoColor = &flagVerbose, &flagQuiet, &flagNoColor
		pConfig, pDir, pFilter, pIDGen = &flagConfig, &flagDir, &flagFilter, &flagIDGen
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(pVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: FOCUS_VERBOSE)")
	flags.BoolVarP(pQuiet, "quiet", "q", false, "Suppress all output except errors (env: FOCUS_QUIET)")
	flags.StringVar(pConfig, "config", "", "Path to focus.toml config file")
	flags.StringVar(pDir, "dir", "", "Override working directory")
	flags.BoolVar(pNoColor, "no-color", false, "Disable colored output (env: FOCUS_NO_COLOR, NO_COLOR)")
	flags.StringVar(pFilter, "filter", "", "Initial filter: all, active or done (env: FOCUS_DEFAULT_FILTER)")
	flags.StringVar(pIDGen, "id-gen", "", "Task id generator: counter, uuid or hash (env: FOCUS_ID_GENERATOR)")
}

// logOptions builds logging options from the global flags and the given
// configured level.
func logOptions(level string) logging.Options {
	return logging.Options{
		Level:   level,
		Verbose: flagVerbose,
		Quiet:   flagQuiet,
		JSON:    os.Getenv("FOCUS_LOG_FORMAT") == "json",
	}
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// NewRootCmd returns a new instance of the root command for use in external
// tools such as the shell completion generator and man page generator. It
// carries the same persistent flags and PersistentPreRunE as the global
// rootCmd so that generated docs and completions include all flags.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               rootCmd.Use,
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rootCmd.PersistentPreRunE,
	}
	registerPersistentFlags(cmd, false)

	// Attach all registered subcommands from the global tree.
	for _, child := range rootCmd.Commands() {
		cmd.AddCommand(child)
	}
	return cmd
}
