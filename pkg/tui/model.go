// Package tui is the Bubble Tea front end over the history and selection
// controllers.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/moodlog/pkg/history"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/selection"
	"tableflip.dev/moodlog/pkg/tips"
)

// HistoryController is the part of history.Controller the UI drives.
type HistoryController interface {
	State() history.State
	Subscribe() (<-chan history.State, func())
	Dispatch(ctx context.Context, in history.Intent) error
}

// SelectionController is the part of selection.Controller the UI drives.
type SelectionController interface {
	State() selection.State
	Subscribe() (<-chan selection.State, func())
	Dispatch(ctx context.Context, in selection.Intent) error
}

type screen int

const (
	screenHistory screen = iota
	screenSelect
	screenEdit
	screenTips
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeConfirmDelete
	modeHelp
)

// editState is the local draft of the entry open in the edit dialog.
type editState struct {
	entry     mood.Entry
	moodIdx   int
	actCursor int
	options   []string
}

// Model contains UI state.
type Model struct {
	ctx   context.Context
	hist  HistoryController
	sel   SelectionController
	theme Theme

	screen screen
	mode   mode

	hs history.State
	ss selection.State

	histCh     <-chan history.State
	selCh      <-chan selection.State
	histCancel func()
	selCancel  func()

	search textinput.Model

	cursor     int
	moodCursor int
	actCursor  int
	edit       editState

	tips     string
	status   string
	width    int
	height   int
	quitting bool
}

// messages
type historyStateMsg history.State
type selectionStateMsg selection.State
type historyStoppedMsg struct{}
type tipsRenderedMsg struct {
	text string
	err  error
}

// New subscribes to both controllers and returns the initial model.
func New(ctx context.Context, hist HistoryController, sel SelectionController) Model {
	ti := textinput.New()
	ti.Placeholder = "search activities"
	ti.CharLimit = 64
	ti.Prompt = ""

	m := Model{
		ctx:    ctx,
		hist:   hist,
		sel:    sel,
		theme:  DefaultTheme(),
		search: ti,
		hs:     hist.State(),
		ss:     sel.State(),
		status: "? for help",
	}
	m.histCh, m.histCancel = hist.Subscribe()
	m.selCh, m.selCancel = sel.Subscribe()
	return m
}

// Init starts listening for controller states.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForHistory(), m.waitForSelection())
}

// Close drops both subscriptions.
func (m Model) Close() {
	if m.histCancel != nil {
		m.histCancel()
	}
	if m.selCancel != nil {
		m.selCancel()
	}
}

func (m Model) waitForHistory() tea.Cmd {
	ch := m.histCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if st, ok := <-ch; ok {
			return historyStateMsg(st)
		}
		return historyStoppedMsg{}
	}
}

func (m Model) waitForSelection() tea.Cmd {
	ch := m.selCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if st, ok := <-ch; ok {
			return selectionStateMsg(st)
		}
		return nil
	}
}

func (m *Model) dispatchHistory(in history.Intent) {
	if err := m.hist.Dispatch(m.ctx, in); err != nil {
		m.status = "ERR: " + err.Error()
	}
}

func (m *Model) dispatchSelection(in selection.Intent) {
	if err := m.sel.Dispatch(m.ctx, in); err != nil {
		m.status = "ERR: " + err.Error()
	}
}

func (m Model) renderTips(md string) tea.Cmd {
	width := m.width - 4
	if width <= 0 {
		width = 76
	}
	return func() tea.Msg {
		out, err := tips.Render(md, width, false)
		return tipsRenderedMsg{text: out, err: err}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case historyStateMsg:
		m.applyHistory(history.State(msg))
		cmds = append(cmds, m.waitForHistory())
	case historyStoppedMsg:
		m.quitting = true
		return m, tea.Quit
	case selectionStateMsg:
		m.applySelection(selection.State(msg))
		cmds = append(cmds, m.waitForSelection())
	case tipsRenderedMsg:
		if msg.err != nil {
			m.tips = msg.err.Error()
		} else {
			m.tips = msg.text
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenHistory:
			if cmd := m.handleHistoryKey(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case screenSelect:
			m.handleSelectKey(msg)
		case screenEdit:
			m.handleEditKey(msg)
		case screenTips:
			if cmd := m.handleTipsKey(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// applyHistory takes a new history state and follows the selected entry into
// and out of the edit dialog.
func (m *Model) applyHistory(st history.State) {
	m.hs = st
	if m.cursor >= len(st.FilteredEntries) {
		m.cursor = len(st.FilteredEntries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	switch {
	case st.SelectedEntry != nil && m.screen == screenHistory:
		m.openEdit(*st.SelectedEntry)
	case st.SelectedEntry == nil && m.screen == screenEdit:
		m.screen = screenHistory
	}
}

func (m *Model) applySelection(st selection.State) {
	m.ss = st
	if st.NavigateToHistory {
		m.screen = screenHistory
		if st.Saved != nil {
			m.status = "Saved " + st.Saved.Mood + " for " + st.Saved.Date
		}
		m.dispatchSelection(selection.NavigationHandled{})
	}
}

func (m *Model) openEdit(e mood.Entry) {
	options := mood.DefaultActivities()
	for _, a := range e.Activities {
		if indexOf(options, a) < 0 {
			options = append(options, a)
		}
	}
	idx := mood.Rank(e.Mood)
	if idx >= len(mood.Labels()) {
		idx = 0
	}
	m.edit = editState{entry: e.Clone(), moodIdx: idx, options: options}
	m.screen = screenEdit
}

func (m Model) current() (mood.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.hs.FilteredEntries) {
		return mood.Entry{}, false
	}
	return m.hs.FilteredEntries[m.cursor], true
}

// Run launches the program and blocks until the user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	defer m.Close()
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	return err
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
