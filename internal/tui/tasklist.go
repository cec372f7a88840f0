package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

// EmptyStateText is shown when the filtered list has no tasks.
const EmptyStateText = "No tasks here yet. Start by adding one above."

// TaskListModel renders the filtered tasks with a cursor and scrolls so the
// cursor row stays visible. It never mutates the store; the App resolves
// the selected task and calls the store itself.
type TaskListModel struct {
	theme   Theme
	keyMap  KeyMap
	tasks   []store.Task
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

// NewTaskListModel creates an empty list.
func NewTaskListModel(theme Theme, keyMap KeyMap) TaskListModel {
	return TaskListModel{
		theme:  theme,
		keyMap: keyMap,
	}
}

// SetSize sets the area available to the list. height is the number of
// rows shown at once.
func (l *TaskListModel) SetSize(width, height int) {
	l.width = width
	l.height = max(height, 1)
	l.scrollToCursor()
}

// SetFocused marks whether the list receives navigation keys.
func (l *TaskListModel) SetFocused(focused bool) {
	l.focused = focused
}

// SetTasks replaces the visible tasks. The cursor follows the previously
// selected task when it is still visible and otherwise keeps its position,
// clamped to the new length.
func (l *TaskListModel) SetTasks(tasks []store.Task) {
	selected, hadSelection := l.Selected()
	l.tasks = tasks

	if hadSelection {
		if i := slices.IndexFunc(tasks, func(t store.Task) bool { return t.ID == selected.ID }); i >= 0 {
			l.cursor = i
		}
	}
	l.clampCursor()
	l.scrollToCursor()
}

// Selected returns the task under the cursor.
func (l TaskListModel) Selected() (store.Task, bool) {
	if l.cursor < 0 || l.cursor >= len(l.tasks) {
		return store.Task{}, false
	}
	return l.tasks[l.cursor], true
}

// Cursor returns the cursor position within the visible tasks.
func (l TaskListModel) Cursor() int {
	return l.cursor
}

// Len returns the number of visible tasks.
func (l TaskListModel) Len() int {
	return len(l.tasks)
}

// Update moves the cursor in response to navigation keys. Other messages
// are ignored.
func (l TaskListModel) Update(msg tea.Msg) (TaskListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !l.focused {
		return l, nil
	}

	switch {
	case key.Matches(keyMsg, l.keyMap.Up):
		l.cursor--
	case key.Matches(keyMsg, l.keyMap.Down):
		l.cursor++
	case key.Matches(keyMsg, l.keyMap.Home):
		l.cursor = 0
	case key.Matches(keyMsg, l.keyMap.End):
		l.cursor = len(l.tasks) - 1
	default:
		return l, nil
	}
	l.clampCursor()
	l.scrollToCursor()
	return l, nil
}

// View renders the visible window of rows, or the empty-state text.
func (l TaskListModel) View() string {
	if len(l.tasks) == 0 {
		return l.theme.EmptyState.Render(EmptyStateText)
	}

	height := l.height
	if height <= 0 {
		height = len(l.tasks)
	}
	end := min(l.offset+height, len(l.tasks))
	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.renderRow(i))
	}
	return strings.Join(rows, "\n")
}

func (l TaskListModel) renderRow(i int) string {
	t := l.tasks[i]

	pointer := "  "
	if i == l.cursor && l.focused {
		pointer = l.theme.Cursor.Render("> ")
	}

	text := l.theme.TaskText.Render(t.Text)
	if t.Done {
		text = l.theme.TaskDone.Render(t.Text)
	}

	row := pointer + l.theme.Checkbox(t.Done) + " " + text
	if l.width > 0 {
		row = lipgloss.NewStyle().MaxWidth(l.width).Render(row)
	}
	if i == l.cursor && l.focused {
		row = l.theme.TaskSelected.Render(row)
	}
	return row
}

func (l *TaskListModel) clampCursor() {
	l.cursor = max(0, min(l.cursor, len(l.tasks)-1))
}

// scrollToCursor adjusts offset so the cursor row is inside the window.
func (l *TaskListModel) scrollToCursor() {
	if l.height <= 0 {
		l.offset = 0
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	l.offset = max(0, min(l.offset, max(len(l.tasks)-l.height, 0)))
}
