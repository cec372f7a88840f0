package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

// StatusBarModel renders the bottom status line: focused area, active
// filter, remaining count and any short-lived flash notice.
//
// StatusBarModel follows Bubble Tea's Elm architecture: Update returns a new
// value, and View is a pure function of the model state.
type StatusBarModel struct {
	theme Theme
	width int

	focus      FocusPanel
	filter     store.Filter
	remaining  int
	total      int
	flash      string
	flashUntil time.Time
}

// NewStatusBarModel creates a StatusBarModel with the given theme.
func NewStatusBarModel(theme Theme) StatusBarModel {
	return StatusBarModel{
		theme:  theme,
		filter: store.FilterAll,
	}
}

// SetWidth updates the status bar width. Call whenever the parent App
// processes a tea.WindowSizeMsg.
func (sb *StatusBarModel) SetWidth(width int) {
	sb.width = width
}

// SetFocus records which area has keyboard focus.
func (sb *StatusBarModel) SetFocus(f FocusPanel) {
	sb.focus = f
}

// SetView copies the counters shown in the bar from the derived view.
func (sb *StatusBarModel) SetView(v store.View) {
	sb.filter = v.Filter
	sb.remaining = v.ActiveCount
	sb.total = v.TotalCount
}

// Flash returns the notice currently shown, if any.
func (sb StatusBarModel) Flash() string {
	return sb.flash
}

// Update handles FlashMsg (show a notice and schedule its expiry) and
// TickMsg (drop the notice once it has expired).
func (sb StatusBarModel) Update(msg tea.Msg) (StatusBarModel, tea.Cmd) {
	switch m := msg.(type) {
	case FlashMsg:
		sb.flash = m.Text
		sb.flashUntil = m.At.Add(flashTTL)
		return sb, TickCmd(flashTTL)

	case TickMsg:
		if sb.flash != "" && !m.Time.Before(sb.flashUntil) {
			sb.flash = ""
			sb.flashUntil = time.Time{}
		}
	}
	return sb, nil
}

// View renders the status bar as a single line spanning the full width.
// Segments are left-aligned, separated by styled dividers, with a "? help"
// hint right-aligned. When space is short the optional segments are dropped
// first so the bar always fits on one line.
//
//	[list] | filter: all | 2 of 3 remaining | cleared 1 task | ? help
func (sb StatusBarModel) View() string {
	if sb.width <= 0 {
		return ""
	}

	sep := sb.theme.StatusSeparator.Render(" | ")

	type segment struct {
		text     string
		optional bool
	}

	segments := []segment{
		{text: sb.theme.StatusKey.Render("[" + sb.focus.String() + "]")},
		{text: sep + sb.filterSegment()},
		{text: sep + sb.countSegment(), optional: true},
	}
	if sb.flash != "" {
		segments = append(segments, segment{text: sep + sb.theme.StatusFlash.Render(sb.flash), optional: true})
	}

	helpStr := sep + sb.theme.HelpKey.Render("?") + " " + sb.theme.HelpDesc.Render("help")

	// StatusBar has Padding(0,1): two columns of the width are padding.
	const barPadding = 2
	innerWidth := max(sb.width-barPadding, 0)
	helpWidth := lipgloss.Width(helpStr)

	mandatoryWidth := 0
	for _, seg := range segments {
		if !seg.optional {
			mandatoryWidth += lipgloss.Width(seg.text)
		}
	}
	optionalBudget := max(innerWidth-mandatoryWidth-helpWidth, 0)

	var leftParts []string
	optionalUsed := 0
	for _, seg := range segments {
		w := lipgloss.Width(seg.text)
		if !seg.optional {
			leftParts = append(leftParts, seg.text)
		} else if optionalUsed+w <= optionalBudget {
			leftParts = append(leftParts, seg.text)
			optionalUsed += w
		}
	}

	left := strings.Join(leftParts, "")
	gap := max(innerWidth-lipgloss.Width(left)-helpWidth, 0)

	return sb.theme.StatusBar.
		Width(sb.width).
		MaxHeight(1).
		Render(left + strings.Repeat(" ", gap) + helpStr)
}

func (sb StatusBarModel) filterSegment() string {
	return sb.theme.StatusValue.Render("filter: " + string(sb.filter))
}

func (sb StatusBarModel) countSegment() string {
	return sb.theme.StatusValue.Render(fmt.Sprintf("%d of %d remaining", sb.remaining, sb.total))
}
