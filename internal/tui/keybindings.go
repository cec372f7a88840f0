package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Focus
// ---------------------------------------------------------------------------

// FocusPanel identifies which area currently has keyboard focus.
type FocusPanel int

const (
	// FocusInput indicates the text-entry line has focus.
	FocusInput FocusPanel = iota
	// FocusList indicates the task list has focus.
	FocusList
)

// focusPanelCount is the total number of focusable areas in the cycle.
const focusPanelCount = 2

// String returns the lower-case area name shown in the status bar.
func (f FocusPanel) String() string {
	switch f {
	case FocusInput:
		return "input"
	case FocusList:
		return "list"
	default:
		return "unknown"
	}
}

// NextFocus returns the next area in the focus cycle.
func NextFocus(current FocusPanel) FocusPanel {
	return FocusPanel((int(current) + 1) % focusPanelCount)
}

// ---------------------------------------------------------------------------
// KeyMap
// ---------------------------------------------------------------------------

// KeyMap defines all keybindings for the TUI. Global keys work everywhere;
// list keys only fire while the task list has focus, because the input line
// needs every printable key for typing.
type KeyMap struct {
	// Global keys
	ForceQuit key.Binding
	FocusNext key.Binding

	// Input keys
	Submit key.Binding
	Blur   key.Binding

	// List keys
	Quit         key.Binding
	Help         key.Binding
	Up           key.Binding
	Down         key.Binding
	Home         key.Binding
	End          key.Binding
	Toggle       key.Binding
	Delete       key.Binding
	Clear        key.Binding
	NewTask      key.Binding
	FilterAll    key.Binding
	FilterActive key.Binding
	FilterDone   key.Binding
	CycleFilter  key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
// Key names follow the Bubble Tea format ("ctrl+c", "shift+tab", etc.).
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// --- Global ---
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch input/list"),
		),

		// --- Input ---
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add task"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave input"),
		),

		// --- List ---
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "first task"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "last task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete task"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear completed"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("a", "i", "/"),
			key.WithHelp("a/i", "new task"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "show all"),
		),
		FilterActive: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "show active"),
		),
		FilterDone: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "show done"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "next filter"),
		),
	}
}

// ---------------------------------------------------------------------------
// HelpOverlay
// ---------------------------------------------------------------------------

// HelpOverlay displays a centered keybinding reference over the TUI.
type HelpOverlay struct {
	theme   Theme
	keyMap  KeyMap
	visible bool
	width   int
	height  int
}

// NewHelpOverlay creates a hidden HelpOverlay with the given theme and keymap.
func NewHelpOverlay(theme Theme, keyMap KeyMap) HelpOverlay {
	return HelpOverlay{
		theme:  theme,
		keyMap: keyMap,
	}
}

// SetDimensions updates the terminal dimensions used to center the overlay.
func (h *HelpOverlay) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Toggle flips the visibility of the help overlay.
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible reports whether the overlay is currently shown.
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// Update processes key events when the overlay is visible. Pressing '?' or
// 'Esc' dismisses the overlay; all other keys are consumed without action.
func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, h.keyMap.Help):
			h.visible = false
		case keyMsg.Type == tea.KeyEsc:
			h.visible = false
		}
	}
	return h, nil
}

// View renders the overlay centered on the terminal. Returns an empty string
// when hidden or when dimensions are not yet known.
func (h HelpOverlay) View() string {
	if !h.visible || h.width == 0 || h.height == 0 {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	return lipgloss.Place(
		h.width, h.height,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Render(h.buildContent()),
	)
}

// buildContent assembles the keybinding table inside the overlay box.
func (h HelpOverlay) buildContent() string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
	sb.WriteString(titleStyle.Render("Focus: Keyboard Shortcuts"))
	sb.WriteString("\n\n")

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent)

	section := func(title string, bindings ...key.Binding) {
		sb.WriteString(sectionStyle.Render(title))
		sb.WriteString("\n")
		for _, b := range bindings {
			sb.WriteString(h.bindingLine(b))
		}
		sb.WriteString("\n")
	}

	section("Input", h.keyMap.Submit, h.keyMap.Blur, h.keyMap.FocusNext)
	section("Tasks",
		h.keyMap.Up, h.keyMap.Down, h.keyMap.Home, h.keyMap.End,
		h.keyMap.Toggle, h.keyMap.Delete, h.keyMap.Clear, h.keyMap.NewTask,
	)
	section("Filters",
		h.keyMap.FilterAll, h.keyMap.FilterActive, h.keyMap.FilterDone, h.keyMap.CycleFilter,
	)
	section("General", h.keyMap.Help, h.keyMap.Quit, h.keyMap.ForceQuit)

	hintStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	sb.WriteString(hintStyle.Render("Press ? or Esc to close"))

	return sb.String()
}

// bindingLine formats a single key.Binding as "  KEY  description\n".
func (h HelpOverlay) bindingLine(b key.Binding) string {
	k := h.theme.HelpKey.Width(10).Render(b.Help().Key)
	d := h.theme.HelpDesc.Render(b.Help().Desc)
	return "  " + k + "  " + d + "\n"
}
