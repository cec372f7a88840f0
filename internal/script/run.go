package script

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/focus/internal/logging"
	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

// CommandEnd labels the snapshot emitted after the last command.
const CommandEnd = "end"

// Snapshot captures the store after a view command or at the end of a
// script. Warnings lists the inputs the store absorbed as no-ops since the
// previous snapshot.
type Snapshot struct {
	Line     int        `json:"line"`
	Command  string     `json:"command"`
	View     store.View `json:"view"`
	Draft    string     `json:"draft"`
	Warnings []string   `json:"warnings,omitempty"`
}

// Final reports whether s is the end-of-script snapshot.
func (s Snapshot) Final() bool {
	return s.Command == CommandEnd
}

// EmitFunc receives snapshots in script order. A non-nil error stops the run.
type EmitFunc func(Snapshot) error

// Runner applies parsed commands to a store.
type Runner struct {
	store    *store.Store
	logger   *log.Logger
	warnings []string
	lastLine int
}

// NewRunner returns a Runner driving st.
func NewRunner(st *store.Store) *Runner {
	return &Runner{
		store:  st,
		logger: logging.New("script"),
	}
}

// Exec applies one command. It returns a snapshot when the command is view.
func (r *Runner) Exec(cmd Command) (Snapshot, bool) {
	r.lastLine = cmd.Line

	switch cmd.Verb {
	case VerbAdd:
		if _, ok := r.store.AddTask(cmd.Text); !ok {
			r.warnf(cmd, "blank task text ignored")
		}
	case VerbSubmit:
		if _, ok := r.store.AddTask(r.store.Draft()); !ok {
			r.warnf(cmd, "draft is blank; nothing added")
		}
	case VerbDraft:
		r.store.SetDraft(cmd.Text)
	case VerbToggle:
		if id, ok := r.resolve(cmd); ok && !r.store.ToggleTask(id) {
			r.warnf(cmd, "no task with id %q", id)
		}
	case VerbDelete:
		if id, ok := r.resolve(cmd); ok && !r.store.DeleteTask(id) {
			r.warnf(cmd, "no task with id %q", id)
		}
	case VerbClear:
		n := r.store.ClearCompleted()
		r.logger.Debug("clear completed", "line", cmd.Line, "removed", n)
	case VerbFilter:
		if !r.store.SetFilter(cmd.Filter) {
			r.warnf(cmd, "invalid filter %q ignored", cmd.Filter)
		}
	case VerbView:
		return r.snapshot(cmd.Line, cmd.String()), true
	default:
		r.warnf(cmd, "unsupported command %q", cmd.Verb)
	}
	return Snapshot{}, false
}

// Finish returns the end-of-script snapshot.
func (r *Runner) Finish() Snapshot {
	return r.snapshot(r.lastLine, CommandEnd)
}

// resolve maps a ref to a task id. Positions index the visible list.
func (r *Runner) resolve(cmd Command) (string, bool) {
	if cmd.Ref.IsID() {
		return cmd.Ref.ID, true
	}
	v := r.store.DerivedView()
	if cmd.Ref.Position > len(v.Tasks) {
		r.warnf(cmd, "position %d out of range (%d visible)", cmd.Ref.Position, len(v.Tasks))
		return "", false
	}
	return v.Tasks[cmd.Ref.Position-1].ID, true
}

func (r *Runner) warnf(cmd Command, format string, args ...any) {
	msg := fmt.Sprintf("line %d: %s: %s", cmd.Line, cmd.Verb, fmt.Sprintf(format, args...))
	r.warnings = append(r.warnings, msg)
	r.logger.Debug("command had no effect", "line", cmd.Line, "command", cmd.String())
}

func (r *Runner) snapshot(line int, command string) Snapshot {
	s := Snapshot{
		Line:     line,
		Command:  command,
		View:     r.store.DerivedView(),
		Draft:    r.store.Draft(),
		Warnings: slices.Clone(r.warnings),
	}
	r.warnings = nil
	return s
}

// Run parses the script from in and applies it to st, passing each snapshot
// to emit. Nothing is applied when the script has parse errors. The context
// is checked between commands. After the last command a final snapshot is
// always emitted.
func Run(ctx context.Context, in io.Reader, st *store.Store, emit EmitFunc) error {
	cmds, err := Parse(in)
	if err != nil {
		return err
	}

	r := NewRunner(st)
	r.logger.Debug("running script", "commands", len(cmds))

	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("script stopped at line %d: %w", cmd.Line, err)
		}
		snap, ok := r.Exec(cmd)
		if !ok {
			continue
		}
		if err := emit(snap); err != nil {
			return fmt.Errorf("emitting snapshot for line %d: %w", cmd.Line, err)
		}
	}

	if err := emit(r.Finish()); err != nil {
		return fmt.Errorf("emitting final snapshot: %w", err)
	}
	return nil
}
