package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"todotui/internal/config"
	domainmodel "todotui/internal/model"
	"todotui/internal/todo"
)

type Filter string

const (
	FilterAll       Filter = "All"
	FilterActive    Filter = "Active"
	FilterCompleted Filter = "Completed"
)

var filterOrder = []Filter{FilterAll, FilterActive, FilterCompleted}

// InputMode is the view-level state machine. Browse is the resting state;
// Edit exists per the task being edited and always returns to Browse on
// save-with-nonempty-text or cancel. None of this is persisted.
type InputMode string

const (
	ModeBrowse  InputMode = "browse"
	ModeAdd     InputMode = "add"
	ModeEdit    InputMode = "edit"
	ModeSearch  InputMode = "search"
	ModePalette InputMode = "palette"
	ModeConfirm InputMode = "confirm"
)

type PendingAction string

const (
	PendingNone           PendingAction = ""
	PendingClearCompleted PendingAction = "clear-completed"
	PendingClearAll       PendingAction = "clear-all"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add            string
	Edit           string
	Toggle         string
	Delete         string
	MoveUp         string
	MoveDown       string
	Search         string
	Palette        string
	ClearCompleted string
	ClearAll       string
	Help           string
	Quit           string
}

func defaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		Add:            "a",
		Edit:           "e",
		Toggle:         " ",
		Delete:         "d",
		MoveUp:         "K",
		MoveDown:       "J",
		Search:         "/",
		Palette:        ":",
		ClearCompleted: "C",
		ClearAll:       "A",
		Help:           "?",
		Quit:           "q",
	}
}

// refreshSignal is the view's subscription target. The list's notify runs
// synchronously inside our own Update handler, so a dirty flag read back on
// the same call stack is enough.
type refreshSignal struct {
	dirty bool
}

type Model struct {
	List    *todo.List
	Filter  Filter
	Mode    InputMode
	Pending PendingAction
	Cursor  int
	Visible []domainmodel.Task
	Status  StatusBar

	HelpVisible bool
	Keys        GlobalKeyMap
	Quitting    bool

	ConfirmDestructive bool
	SearchQuery        string
	EditingID          int64

	quickAddInput textinput.Model
	editInput     textinput.Model
	commandInput  textinput.Model
	searchInput   textinput.Model
	helpModel     help.Model

	signal *refreshSignal
}

func NewModel(list *todo.List, cfg config.Config) Model {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "task text, optional !low / !high"
	quickAdd.CharLimit = 256

	edit := textinput.New()
	edit.CharLimit = 256

	command := textinput.New()
	command.Placeholder = "add <text> | toggle <id> | clear completed | ..."
	command.CharLimit = 256

	search := textinput.New()
	search.Placeholder = "search text"
	search.CharLimit = 128

	m := Model{
		List:               list,
		Filter:             FilterAll,
		Mode:               ModeBrowse,
		Keys:               defaultKeyMap(),
		ConfirmDestructive: cfg.ConfirmDestructive,
		quickAddInput:      quickAdd,
		editInput:          edit,
		commandInput:       command,
		searchInput:        search,
		helpModel:          help.New(),
		signal:             &refreshSignal{},
	}
	list.Subscribe(m.signal.mark)
	m.reload()
	return m
}

func (s *refreshSignal) mark() { s.dirty = true }

// reload re-reads the list through Search and applies the completion filter.
func (m *Model) reload() {
	tasks := m.List.Search(m.SearchQuery)
	visible := tasks[:0]
	for _, t := range tasks {
		switch m.Filter {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		visible = append(visible, t)
	}
	m.Visible = visible
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// consumeSignal refreshes the visible slice when a mutation notified us.
func (m *Model) consumeSignal() {
	if m.signal != nil && m.signal.dirty {
		m.signal.dirty = false
		m.reload()
	}
}

func (m Model) selected() (domainmodel.Task, bool) {
	if len(m.Visible) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return domainmodel.Task{}, false
	}
	return m.Visible[m.Cursor], true
}

func (m *Model) setFilter(f Filter) {
	m.Filter = f
	m.reload()
}

func (m *Model) cycleFilter() {
	for i, f := range filterOrder {
		if f == m.Filter {
			m.setFilter(filterOrder[(i+1)%len(filterOrder)])
			return
		}
	}
	m.setFilter(FilterAll)
}

func (m Model) filterIndex() int {
	for i, f := range filterOrder {
		if f == m.Filter {
			return i
		}
	}
	return 0
}
