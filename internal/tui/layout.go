package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

// MinTerminalWidth is the minimum terminal width (in columns) required for the
// full layout. Below this threshold RenderTooSmall is used instead.
const MinTerminalWidth = 40

// MinTerminalHeight is the minimum terminal height (in rows) required for the
// full layout. Below this threshold RenderTooSmall is used instead.
const MinTerminalHeight = 14

// Fixed row heights of the stacked sections.
const (
	TitleBarHeight  = 1
	SubtitleHeight  = 1
	InputHeight     = 3 // rounded border above and below the text line
	ChipsHeight     = 1
	ProgressHeight  = 1
	FooterHeight    = 1
	StatusBarHeight = 1

	// spacerRows counts the blank lines between sections: after the
	// subtitle, after the chips and after the list.
	spacerRows = 3
)

// ---------------------------------------------------------------------------
// PanelDimensions
// ---------------------------------------------------------------------------

// PanelDimensions holds the computed width and height for a single section.
// Zero values mean the layout has not yet been computed via Resize.
type PanelDimensions struct {
	Width  int
	Height int
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

// Layout computes the size of every section of the screen. It must be
// updated on every tea.WindowSizeMsg by calling Resize.
//
//	+-----------------------------------------+
//	| Title bar                               |
//	| Subtitle                                |
//	|                                         |
//	| ╭ Input ────────────────────────────╮   |
//	| ╰───────────────────────────────────╯   |
//	| [1 All] 2 Active 3 Done                 |
//	|                                         |
//	| Task list (takes the remaining rows)    |
//	|                                         |
//	| Progress bar (optional)                 |
//	| N remaining        Clear completed (c)  |
//	| Status bar                              |
//	+-----------------------------------------+
type Layout struct {
	termWidth    int
	termHeight   int
	showProgress bool

	TitleBar  PanelDimensions
	Input     PanelDimensions
	List      PanelDimensions
	Progress  PanelDimensions
	StatusBar PanelDimensions
}

// NewLayout returns a Layout that reserves a row for the progress bar when
// showProgress is set. All dimensions are zero until the first Resize.
func NewLayout(showProgress bool) Layout {
	return Layout{showProgress: showProgress}
}

// Resize recalculates all dimensions for the given terminal size. Below the
// minimum size it only records the raw dimensions and returns false.
func (l *Layout) Resize(width, height int) bool {
	l.termWidth = width
	l.termHeight = height

	if l.IsTooSmall() {
		return false
	}

	fixed := TitleBarHeight + SubtitleHeight + InputHeight + ChipsHeight +
		FooterHeight + StatusBarHeight + spacerRows
	if l.showProgress {
		fixed += ProgressHeight
	}

	l.TitleBar = PanelDimensions{Width: width, Height: TitleBarHeight}
	// The input border takes one column on each side.
	l.Input = PanelDimensions{Width: width - 2, Height: InputHeight}
	l.List = PanelDimensions{Width: width - 2, Height: max(height-fixed, 1)}
	l.Progress = PanelDimensions{}
	if l.showProgress {
		l.Progress = PanelDimensions{Width: min(width-10, 40), Height: ProgressHeight}
	}
	l.StatusBar = PanelDimensions{Width: width, Height: StatusBarHeight}
	return true
}

// IsTooSmall reports whether the last known terminal size falls below
// MinTerminalWidth x MinTerminalHeight.
func (l Layout) IsTooSmall() bool {
	return l.termWidth < MinTerminalWidth || l.termHeight < MinTerminalHeight
}

// TerminalSize returns the most recently recorded terminal dimensions.
func (l Layout) TerminalSize() (int, int) {
	return l.termWidth, l.termHeight
}

// ShowsProgress reports whether a progress row is reserved.
func (l Layout) ShowsProgress() bool {
	return l.showProgress
}

// Sections holds the pre-rendered content of each part of the screen.
type Sections struct {
	TitleBar  string
	Subtitle  string
	Input     string
	Chips     string
	List      string
	Progress  string
	Footer    string
	StatusBar string
}

// Render stacks the sections top to bottom. The list is padded or cut to
// its computed height so the footer stays pinned above the status bar.
func (l Layout) Render(s Sections) string {
	list := lipgloss.NewStyle().
		Height(l.List.Height).
		MaxHeight(l.List.Height).
		Render(s.List)

	rows := []string{s.TitleBar, s.Subtitle, "", s.Input, s.Chips, "", list, ""}
	if l.showProgress {
		rows = append(rows, s.Progress)
	}
	rows = append(rows, s.Footer, s.StatusBar)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderTooSmall returns a message asking the user to enlarge the terminal,
// centered when the terminal size is known.
func (l Layout) RenderTooSmall(theme Theme) string {
	msg := fmt.Sprintf("Terminal too small.\nPlease resize to at least %dx%d.", MinTerminalWidth, MinTerminalHeight)
	styled := theme.ErrorText.Render(msg)

	if l.termWidth <= 0 || l.termHeight <= 0 {
		return styled
	}
	return lipgloss.Place(l.termWidth, l.termHeight, lipgloss.Center, lipgloss.Center, styled)
}
