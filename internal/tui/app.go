// Package tui is the full-screen terminal front end for the task store. The
// App model holds no task state of its own: it renders the derived view the
// store pushes to it and turns key presses into store operations.
package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/AbdelazizMoustafa10m/focus/internal/logging"
	"github.com/AbdelazizMoustafa10m/focus/internal/store"
)

// inputCharLimit caps the length of a task typed into the input line.
const inputCharLimit = 256

// AppConfig holds configuration for the TUI application.
type AppConfig struct {
	// Version is the semantic version shown in the title bar (e.g. "1.0.0").
	Version string
	// Title and Subtitle head the screen.
	Title    string
	Subtitle string
	// Placeholder is shown in the empty input line.
	Placeholder string
	// ConfirmClear asks before clearing completed tasks.
	ConfirmClear bool
	// ShowProgress renders the completion progress bar.
	ShowProgress bool
}

// liveView receives the derived view from the store subscription. It is
// shared by every copy of App.
type liveView struct {
	view store.View
}

// App is the top-level Bubble Tea model.
type App struct {
	config      AppConfig
	store       *store.Store
	live        *liveView
	unsubscribe func()

	theme     Theme
	keyMap    KeyMap
	input     textinput.Model
	list      TaskListModel
	statusBar StatusBarModel
	help      HelpOverlay
	confirm   ConfirmModel
	layoutMgr Layout

	width    int
	height   int
	focus    FocusPanel
	ready    bool // true after first WindowSizeMsg
	quitting bool
}

// NewApp constructs an App bound to st. The input line starts focused and
// holds the store's current draft. Call Close when the App is discarded.
func NewApp(cfg AppConfig, st *store.Store) App {
	theme := DefaultTheme()
	keyMap := DefaultKeyMap()

	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = cfg.Placeholder
	input.CharLimit = inputCharLimit
	input.SetValue(st.Draft())

	live := &liveView{view: st.DerivedView()}
	unsubscribe := st.Subscribe(func(v store.View) { live.view = v })

	a := App{
		config:      cfg,
		store:       st,
		live:        live,
		unsubscribe: unsubscribe,
		theme:       theme,
		keyMap:      keyMap,
		input:       input,
		list:        NewTaskListModel(theme, keyMap),
		statusBar:   NewStatusBarModel(theme),
		help:        NewHelpOverlay(theme, keyMap),
		confirm:     NewConfirmModel(theme),
		layoutMgr:   NewLayout(cfg.ShowProgress),
	}
	a.setFocus(FocusInput)
	a.sync()
	return a
}

// Close cancels the store subscription.
func (a App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Init starts the cursor blink in the focused input line.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update dispatches incoming messages and returns the updated model plus any
// follow-up command.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.sync()

	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.ready = true
		a.layout()
		return a, nil

	case ClearConfirmedMsg:
		cmd := a.clearCompleted()
		return a, cmd

	case ClearCancelledMsg:
		return a, flashCmd("kept completed tasks")

	case FlashMsg, TickMsg:
		var cmd tea.Cmd
		a.statusBar, cmd = a.statusBar.Update(m)
		return a, cmd
	}

	if a.confirm.IsActive() {
		var cmd tea.Cmd
		a.confirm, cmd = a.confirm.Update(msg)
		return a, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return a.handleKey(keyMsg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(k, a.keyMap.ForceQuit) {
		a.quitting = true
		return a, tea.Quit
	}

	if a.help.IsVisible() {
		a.help, _ = a.help.Update(k)
		return a, nil
	}

	if key.Matches(k, a.keyMap.FocusNext) {
		cmd := a.setFocus(NextFocus(a.focus))
		return a, cmd
	}

	if a.focus == FocusInput {
		return a.handleInputKey(k)
	}
	return a.handleListKey(k)
}

// handleInputKey edits the draft. Enter submits it; blank drafts are kept.
func (a App) handleInputKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, a.keyMap.Submit):
		if _, ok := a.store.AddTask(a.store.Draft()); ok {
			a.input.SetValue("")
			a.sync()
		}
		return a, nil

	case key.Matches(k, a.keyMap.Blur):
		cmd := a.setFocus(FocusList)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(k)
	a.store.SetDraft(a.input.Value())
	return a, cmd
}

func (a App) handleListKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, a.keyMap.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(k, a.keyMap.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(k, a.keyMap.NewTask):
		cmd := a.setFocus(FocusInput)
		return a, cmd

	case key.Matches(k, a.keyMap.Toggle):
		if t, ok := a.list.Selected(); ok {
			a.store.ToggleTask(t.ID)
			a.sync()
		}
		return a, nil

	case key.Matches(k, a.keyMap.Delete):
		if t, ok := a.list.Selected(); ok {
			a.store.DeleteTask(t.ID)
			a.sync()
		}
		return a, nil

	case key.Matches(k, a.keyMap.Clear):
		completed := a.live.view.CompletedCount
		if completed == 0 {
			return a, nil
		}
		if a.config.ConfirmClear {
			cmd := a.confirm.Start(completed)
			return a, cmd
		}
		cmd := a.clearCompleted()
		return a, cmd

	case key.Matches(k, a.keyMap.FilterAll):
		return a.setFilter(store.FilterAll)
	case key.Matches(k, a.keyMap.FilterActive):
		return a.setFilter(store.FilterActive)
	case key.Matches(k, a.keyMap.FilterDone):
		return a.setFilter(store.FilterDone)
	case key.Matches(k, a.keyMap.CycleFilter):
		return a.setFilter(a.live.view.Filter.Next())
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(k)
	return a, cmd
}

func (a App) setFilter(f store.Filter) (tea.Model, tea.Cmd) {
	a.store.SetFilter(f)
	a.sync()
	return a, nil
}

// clearCompleted removes done tasks and flashes how many went.
func (a *App) clearCompleted() tea.Cmd {
	n := a.store.ClearCompleted()
	a.sync()
	if n == 0 {
		return nil
	}
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	return flashCmd(fmt.Sprintf("cleared %d completed %s", n, noun))
}

// setFocus moves keyboard focus and returns the input's focus command.
func (a *App) setFocus(f FocusPanel) tea.Cmd {
	a.focus = f
	a.list.SetFocused(f == FocusList)
	a.statusBar.SetFocus(f)
	if f == FocusInput {
		return a.input.Focus()
	}
	a.input.Blur()
	return nil
}

// sync copies the latest pushed view into the sub-models. The store calls
// the subscriber on the goroutine that changed it, so after a store call
// returns live.view is already current.
func (a *App) sync() {
	v := a.live.view
	a.list.SetTasks(v.Tasks)
	a.statusBar.SetView(v)
}

// layout sizes the sub-models for the current terminal.
func (a *App) layout() {
	a.layoutMgr.Resize(a.width, a.height)
	a.help.SetDimensions(a.width, a.height)
	a.confirm.SetDimensions(a.width, a.height)
	a.statusBar.SetWidth(a.width)
	a.input.Width = max(a.layoutMgr.Input.Width-6, 10)
	a.list.SetSize(a.layoutMgr.List.Width, a.layoutMgr.List.Height)
}

// View renders the complete UI as a string.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Initializing Focus..."
	}
	if a.layoutMgr.IsTooSmall() {
		return a.layoutMgr.RenderTooSmall(a.theme)
	}
	if a.help.IsVisible() {
		return a.help.View()
	}
	if a.confirm.IsActive() {
		return a.confirm.View()
	}
	return a.fullView()
}

func (a App) fullView() string {
	v := a.live.view

	inputStyle := a.theme.InputBox
	if a.focus == FocusInput {
		inputStyle = a.theme.InputBoxFocused
	}

	list := a.list
	list.SetTasks(v.Tasks)

	return a.layoutMgr.Render(Sections{
		TitleBar:  a.renderTitleBar(),
		Subtitle:  a.theme.Subtitle.Render(a.config.Subtitle),
		Input:     inputStyle.Width(a.layoutMgr.Input.Width).Render(a.input.View()),
		Chips:     a.renderChips(v.Filter),
		List:      list.View(),
		Progress:  a.renderProgress(v),
		Footer:    a.renderFooter(v),
		StatusBar: a.statusBar.View(),
	})
}

// renderTitleBar builds a full-width title bar with the configured title and
// the version.
func (a App) renderTitleBar() string {
	title := a.theme.TitleText.Render(a.config.Title)
	if a.config.Version != "" {
		title += "  " + a.theme.TitleVersion.Render("v"+a.config.Version)
	}
	return a.theme.TitleBar.Width(a.width).Render(title)
}

// renderChips draws the three filter chips with the active one highlighted.
func (a App) renderChips(active store.Filter) string {
	chips := make([]string, 0, 3)
	for i, f := range store.Filters() {
		label := fmt.Sprintf("%d %s", i+1, filterLabel(f))
		if f == active {
			chips = append(chips, a.theme.ChipActive.Render(label))
			continue
		}
		chips = append(chips, a.theme.ChipInactive.Render(label))
	}
	return " " + strings.Join(chips, " ")
}

func (a App) renderProgress(v store.View) string {
	bar := a.theme.ProgressBar(float64(v.Progress)/100, a.layoutMgr.Progress.Width)
	return " " + bar + " " + a.theme.ProgressPercent.Render(fmt.Sprintf("%d%%", v.Progress))
}

// renderFooter shows the remaining counter and, when any task is done, the
// clear-completed hint.
func (a App) renderFooter(v store.View) string {
	left := a.theme.Counter.Render(fmt.Sprintf(" %d remaining", v.ActiveCount))
	if v.CompletedCount == 0 {
		return left
	}
	hint := a.theme.ClearHint.Render("Clear completed (c)")
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(hint)-1, 1)
	return left + strings.Repeat(" ", gap) + hint
}

func filterLabel(f store.Filter) string {
	switch f {
	case store.FilterActive:
		return "Active"
	case store.FilterDone:
		return "Done"
	default:
		return "All"
	}
}

// RunTUI runs the full-screen program against st until the user quits or
// ctx is cancelled. SIGINT and SIGTERM cancel the run as well.
func RunTUI(ctx context.Context, cfg AppConfig, st *store.Store) error {
	logger := logging.New("tui")
	logger.Info("starting TUI", "version", cfg.Version, "tasks", st.Len())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(cfg, st)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running TUI: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("TUI stopped", "tasks", st.Len())
	return nil
}
