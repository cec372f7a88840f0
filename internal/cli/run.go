package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/focus/internal/logging"
	"github.com/AbdelazizMoustafa10m/focus/internal/script"
)

// Flag values for the run subcommand.
var (
	runFlagJSON      bool
	runFlagFinalOnly bool
)

// runCmd implements "focus run [file|-]".
var runCmd = &cobra.Command{
	Use:   "run [file|-]",
	Short: "Drive the task list from a script",
	Long: `Run a line-oriented task script against a fresh, empty list without
opening the terminal UI. The script is read from the named file, or from
stdin when the argument is omitted or "-".

Commands, one per line:
  add <text>          add a task at the top of the list
  toggle <ref>        mark a task done or not done
  delete <ref>        remove a task (alias: rm)
  clear               remove every completed task
  filter <name>       show all, active or done tasks
  draft <text>        set the text-entry buffer
  submit              add the draft as a task
  view                print the current list

A <ref> is a 1-based position in the visible list or #<id>. Blank lines and
lines starting with # are ignored. The list is printed after every view
command and once more when the script ends.

Examples:
  focus run tasks.txt
  printf 'add Buy milk\ntoggle 1\n' | focus run --json
  focus run --final-only --filter active tasks.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().BoolVar(&runFlagJSON, "json", false, "Print snapshots as newline-delimited JSON")
	runCmd.Flags().BoolVar(&runFlagFinalOnly, "final-only", false, "Print only the end-of-script snapshot")
	rootCmd.AddCommand(runCmd)
}

// runScript is the RunE handler for the run command.
func runScript(cmd *cobra.Command, args []string) error {
	in, name, closeFn, err := openScript(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	cfg, err := loadSessionConfig()
	if err != nil {
		return err
	}
	st, err := newStore(cfg)
	if err != nil {
		return err
	}

	var f script.Formatter
	if runFlagJSON {
		f = script.NewJSONFormatter(cmd.OutOrStdout())
	} else {
		f = script.NewTextFormatter(cmd.OutOrStdout())
	}

	emit := f.Write
	if runFlagFinalOnly {
		emit = func(s script.Snapshot) error {
			if !s.Final() {
				return nil
			}
			return f.Write(s)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.New("cli").Debug("running script", "source", name)
	if err := script.Run(ctx, in, st, emit); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

// openScript returns the script source named by args along with a display
// name and a close function.
func openScript(cmd *cobra.Command, args []string) (io.Reader, string, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), "stdin", func() {}, nil
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("opening script: %w", err)
	}
	return f, path, func() { _ = f.Close() }, nil
}
