package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel asks the user to confirm clearing completed tasks. It wraps a
// single-field huh form and reports the outcome as ClearConfirmedMsg or
// ClearCancelledMsg.
type ConfirmModel struct {
	theme     Theme
	form      *huh.Form
	width     int
	height    int
	active    bool
	count     int
	confirmed bool
}

// NewConfirmModel creates an inactive ConfirmModel.
func NewConfirmModel(theme Theme) ConfirmModel {
	return ConfirmModel{theme: theme}
}

// SetDimensions updates the terminal dimensions used to center the dialog.
func (c *ConfirmModel) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// IsActive reports whether the dialog is currently displayed.
func (c ConfirmModel) IsActive() bool {
	return c.active
}

// Start builds the form for clearing count tasks, activates the dialog and
// returns the form's Init command.
func (c *ConfirmModel) Start(count int) tea.Cmd {
	c.count = count
	c.confirmed = false
	c.form = c.buildForm()
	c.active = true
	return c.form.Init()
}

// Update forwards messages to the form while the dialog is active. Esc
// cancels immediately, even if the form would absorb the key.
func (c ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	if !c.active || c.form == nil {
		return c, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		c.active = false
		return c, func() tea.Msg { return ClearCancelledMsg{} }
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if done := c.outcome(c.form.State); done != nil {
		c.active = false
		return c, done
	}
	return c, cmd
}

// outcome maps a finished form state to the command reporting the answer.
// It returns nil while the form is still running.
func (c ConfirmModel) outcome(state huh.FormState) tea.Cmd {
	switch state {
	case huh.StateCompleted:
		if c.confirmed {
			return func() tea.Msg { return ClearConfirmedMsg{} }
		}
		return func() tea.Msg { return ClearCancelledMsg{} }
	case huh.StateAborted:
		return func() tea.Msg { return ClearCancelledMsg{} }
	default:
		return nil
	}
}

// View renders the dialog centered on the terminal, or "" when inactive.
func (c ConfirmModel) View() string {
	if !c.active || c.form == nil {
		return ""
	}

	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(1, 2).
		Render(c.form.View())

	if c.width > 0 && c.height > 0 {
		return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, boxed)
	}
	return boxed
}

// confirmTitle returns the dialog question for clearing count tasks.
func confirmTitle(count int) string {
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	return fmt.Sprintf("Clear %d completed %s?", count, noun)
}

func (c *ConfirmModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(confirmTitle(c.count)).
				Description("Cleared tasks cannot be restored.").
				Affirmative("Clear").
				Negative("Keep").
				Value(&c.confirmed),
		),
	).
		WithTheme(buildHuhTheme(c.theme)).
		WithWidth(48).
		WithShowHelp(false)
}

// buildHuhTheme translates the TUI Theme into a huh.Theme so that the dialog
// inherits the application's palette.
func buildHuhTheme(theme Theme) *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ColorPrimary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorHighlight).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(ColorWarning)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Focused.ErrorMessage = theme.ErrorText

	return t
}
