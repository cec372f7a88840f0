package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ---------------------------------------------------------------------------
// Status Messages
// ---------------------------------------------------------------------------

// FlashMsg asks the status bar to show a short-lived notice, such as
// "cleared 2 completed tasks".
type FlashMsg struct {
	// Text is the notice to display.
	Text string
	// At is when the notice was raised; it expires flashTTL later.
	At time.Time
}

// flashTTL is how long a FlashMsg stays visible.
const flashTTL = 3 * time.Second

// flashCmd returns a command that delivers a FlashMsg stamped with the
// current time.
func flashCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return FlashMsg{Text: text, At: time.Now()}
	}
}

// ---------------------------------------------------------------------------
// Confirmation Messages
// ---------------------------------------------------------------------------

// ClearConfirmedMsg is dispatched when the user accepts the clear-completed
// confirmation.
type ClearConfirmedMsg struct{}

// ClearCancelledMsg is dispatched when the user declines or dismisses the
// clear-completed confirmation.
type ClearCancelledMsg struct{}

// ---------------------------------------------------------------------------
// Timer Messages
// ---------------------------------------------------------------------------

// TickMsg is sent by TickCmd when its timer fires.
type TickMsg struct {
	Time time.Time
}

// TickCmd returns a tea.Cmd that sends a single TickMsg after duration d.
// Use this helper instead of time.After in goroutines to stay within Bubble
// Tea's Elm architecture and avoid data races.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
