// Package script runs line-oriented command scripts against a task store
// without a terminal. Each non-blank, non-comment line is one command:
//
//	add <text...>        add a task (blank text is ignored)
//	toggle <ref>         flip a task between open and done
//	delete <ref>         remove a task (alias: rm)
//	clear                remove every done task
//	filter all|active|done
//	draft <text...>      replace the text-entry buffer
//	submit               add the draft as a task
//	view                 emit a snapshot of the derived view
//
// A ref is either a 1-based position in the currently visible list or an
// explicit task id written as #<id>.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

// Verb names a script command.
type Verb string

const (
	VerbAdd    Verb = "add"
	VerbToggle Verb = "toggle"
	VerbDelete Verb = "delete"
	VerbClear  Verb = "clear"
	VerbFilter Verb = "filter"
	VerbDraft  Verb = "draft"
	VerbSubmit Verb = "submit"
	VerbView   Verb = "view"
)

// aliases maps alternative spellings to their canonical verb.
var aliases = map[string]Verb{
	"rm": VerbDelete,
}

var verbs = map[Verb]bool{
	VerbAdd:    true,
	VerbToggle: true,
	VerbDelete: true,
	VerbClear:  true,
	VerbFilter: true,
	VerbDraft:  true,
	VerbSubmit: true,
	VerbView:   true,
}

// Sentinel errors wrapped by ParseError.
var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingArgument    = errors.New("missing argument")
	ErrUnexpectedArgument = errors.New("unexpected argument")
	ErrInvalidRef         = errors.New("invalid task reference")
)

// maxLineLength caps a single script line.
const maxLineLength = 1 << 20

// ParseError reports a malformed script line.
type ParseError struct {
	Line  int
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Ref points at a task either by its position in the visible list or by id.
// Exactly one of Position and ID is set.
type Ref struct {
	Position int
	ID       string
}

// IsID reports whether the ref names a task id.
func (r Ref) IsID() bool {
	return r.ID != ""
}

func (r Ref) String() string {
	if r.IsID() {
		return "#" + r.ID
	}
	return strconv.Itoa(r.Position)
}

// ParseRef parses a task reference. Digits are a 1-based position; a leading
// '#' introduces an id.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, ErrMissingArgument
	}

	if id, ok := strings.CutPrefix(s, "#"); ok {
		if id == "" || strings.ContainsFunc(id, unicode.IsSpace) {
			return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
		}
		return Ref{ID: id}, nil
	}

	if !isAllDigits(s) {
		return Ref{}, fmt.Errorf("%w: %q (want a position or #id)", ErrInvalidRef, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Ref{}, fmt.Errorf("%w: %q (positions start at 1)", ErrInvalidRef, s)
	}
	return Ref{Position: n}, nil
}

// Command is one parsed script line.
type Command struct {
	Line   int
	Verb   Verb
	Text   string       // add, draft
	Ref    Ref          // toggle, delete
	Filter store.Filter // filter
}

// String renders the command in canonical script syntax.
func (c Command) String() string {
	switch c.Verb {
	case VerbAdd, VerbDraft:
		if c.Text == "" {
			return string(c.Verb)
		}
		return string(c.Verb) + " " + c.Text
	case VerbToggle, VerbDelete:
		return string(c.Verb) + " " + c.Ref.String()
	case VerbFilter:
		return string(c.Verb) + " " + string(c.Filter)
	default:
		return string(c.Verb)
	}
}

// Parse reads a whole script. It reports every malformed line, joined into
// one error, and returns no commands when any line is malformed.
func Parse(r io.Reader) ([]Command, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	var (
		cmds []Command
		errs []error
		n    int
	)
	for scanner.Scan() {
		n++
		cmd, ok, err := ParseLine(n, scanner.Text())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cmds, nil
}

// ParseLine parses a single line. ok is false for blank and comment lines.
func ParseLine(n int, line string) (cmd Command, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Command{}, false, nil
	}

	word, rest := splitWord(trimmed)
	verb, known := lookupVerb(word)
	if !known {
		return Command{}, false, &ParseError{Line: n, Input: line, Err: fmt.Errorf("%w: %q", ErrUnknownCommand, word)}
	}

	cmd = Command{Line: n, Verb: verb}
	fail := func(err error) (Command, bool, error) {
		return Command{}, false, &ParseError{Line: n, Input: line, Err: fmt.Errorf("%s: %w", verb, err)}
	}

	switch verb {
	case VerbAdd, VerbDraft:
		// Blank text is legal; the store treats it as a no-op.
		cmd.Text = rest
	case VerbToggle, VerbDelete:
		if strings.ContainsFunc(rest, unicode.IsSpace) {
			return fail(fmt.Errorf("%w: %q", ErrUnexpectedArgument, rest))
		}
		ref, err := ParseRef(rest)
		if err != nil {
			return fail(err)
		}
		cmd.Ref = ref
	case VerbFilter:
		if rest == "" {
			return fail(ErrMissingArgument)
		}
		f, err := store.ParseFilter(rest)
		if err != nil {
			return fail(err)
		}
		cmd.Filter = f
	default:
		if rest != "" {
			return fail(fmt.Errorf("%w: %q", ErrUnexpectedArgument, rest))
		}
	}
	return cmd, true, nil
}

func lookupVerb(word string) (Verb, bool) {
	word = strings.ToLower(word)
	if v, ok := aliases[word]; ok {
		return v, true
	}
	v := Verb(word)
	return v, verbs[v]
}

// splitWord splits s at its first run of whitespace.
func splitWord(s string) (word, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
