package script

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

// Formatter writes snapshots to an output stream.
type Formatter interface {
	Write(s Snapshot) error
}

// JSONFormatter writes one JSON object per snapshot (NDJSON).
type JSONFormatter struct {
	enc *json.Encoder
}

// NewJSONFormatter returns a formatter writing NDJSON to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{enc: json.NewEncoder(w)}
}

func (f *JSONFormatter) Write(s Snapshot) error {
	if s.View.Tasks == nil {
		s.View.Tasks = []store.Task{}
	}
	return f.enc.Encode(s)
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"})
	chipStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	chipActive   = lipgloss.NewStyle().Bold(true).Underline(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	idStyle      = lipgloss.NewStyle().Faint(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
)

// EmptyListText is shown when the visible list has no tasks.
const EmptyListText = "No tasks here yet. Start by adding one above."

// TextFormatter renders snapshots as a readable listing:
//
//	== line 4: view ==
//	[all] active done
//	   1  [x] Buy milk  (t2)
//	   2  [ ] Walk dog  (t1)
//	1 remaining, 1 done, 50%
type TextFormatter struct {
	w io.Writer
}

// NewTextFormatter returns a formatter writing styled text to w.
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{w: w}
}

func (f *TextFormatter) Write(s Snapshot) error {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("== line %d: %s ==", s.Line, s.Command)))
	b.WriteByte('\n')
	b.WriteString(renderChips(s.View.Filter))
	b.WriteByte('\n')

	if s.View.Empty() {
		b.WriteString(mutedStyle.Render(EmptyListText))
		b.WriteByte('\n')
	}
	for i, t := range s.View.Tasks {
		b.WriteString(renderTask(i+1, t))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "%d remaining, %d done, %d%%\n", s.View.ActiveCount, s.View.CompletedCount, s.View.Progress)
	if s.Draft != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("draft: %q", s.Draft)))
		b.WriteByte('\n')
	}
	for _, w := range s.Warnings {
		b.WriteString(warningStyle.Render("! " + w))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(f.w, b.String())
	return err
}

func renderChips(active store.Filter) string {
	chips := make([]string, 0, 3)
	for _, f := range store.Filters() {
		if f == active {
			chips = append(chips, chipActive.Render("["+string(f)+"]"))
			continue
		}
		chips = append(chips, chipStyle.Render(string(f)))
	}
	return strings.Join(chips, " ")
}

func renderTask(pos int, t store.Task) string {
	box := "[ ]"
	text := t.Text
	if t.Done {
		box = "[x]"
		text = doneStyle.Render(text)
	}
	return fmt.Sprintf("%4d  %s %s  %s", pos, box, text, idStyle.Render("("+t.ID+")"))
}
