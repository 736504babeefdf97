package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	domainmodel "todotui/internal/model"
	"todotui/internal/views"
)

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.Mode {
	case ModeAdd:
		return m.handleAddKey(msg), nil
	case ModeEdit:
		return m.handleEditKey(msg), nil
	case ModeSearch:
		return m.handleSearchKey(msg), nil
	case ModePalette:
		return m.handlePaletteKey(msg), nil
	case ModeConfirm:
		return m.handleConfirmKey(msg), nil
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Visible)-1 {
			m.Cursor++
		}
	case "tab":
		m.cycleFilter()
	case "1":
		m.setFilter(FilterAll)
	case "2":
		m.setFilter(FilterActive)
	case "3":
		m.setFilter(FilterCompleted)
	case m.Keys.Add:
		m.Mode = ModeAdd
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "add mode"}
	case m.Keys.Edit:
		if task, ok := m.selected(); ok {
			m.Mode = ModeEdit
			m.EditingID = task.ID
			m.editInput.SetValue(task.Text)
			m.editInput.CursorEnd()
			m.editInput.Focus()
			m.Status = StatusBar{Text: fmt.Sprintf("editing #%d", task.ID)}
		}
	case m.Keys.Toggle:
		if task, ok := m.selected(); ok {
			m.List.Toggle(task.ID)
			m.consumeSignal()
		}
	case m.Keys.Delete, "x":
		if task, ok := m.selected(); ok {
			m.List.Delete(task.ID)
			m.consumeSignal()
			m.Status = StatusBar{Text: fmt.Sprintf("deleted #%d", task.ID)}
		}
	case m.Keys.MoveUp:
		m.moveSelected(-1)
	case m.Keys.MoveDown:
		m.moveSelected(1)
	case m.Keys.Search:
		m.Mode = ModeSearch
		m.searchInput.SetValue(m.SearchQuery)
		m.searchInput.Focus()
	case m.Keys.Palette:
		m.Mode = ModePalette
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.ClearCompleted:
		return m.requestClear(PendingClearCompleted), nil
	case m.Keys.ClearAll:
		return m.requestClear(PendingClearAll), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case "esc":
		if m.SearchQuery != "" {
			m.SearchQuery = ""
			m.reload()
			m.Status = StatusBar{Text: "search cleared"}
		}
	}
	return m, nil
}

// moveSelected reorders the selected task. Reordering is only meaningful on
// the unfiltered, unsearched list, where visible indexes equal list indexes.
func (m *Model) moveSelected(delta int) {
	if m.Filter != FilterAll || m.SearchQuery != "" {
		m.Status = StatusBar{Text: "reorder works on the unfiltered list", IsError: true}
		return
	}
	task, ok := m.selected()
	if !ok {
		return
	}
	to := m.Cursor + delta
	if to < 0 || to >= len(m.Visible) {
		return
	}
	m.List.Move(task.ID, to)
	m.consumeSignal()
	m.Cursor = to
}

func (m Model) requestClear(action PendingAction) Model {
	if !m.ConfirmDestructive {
		m.applyClear(action)
		return m
	}
	m.Mode = ModeConfirm
	m.Pending = action
	return m
}

func (m *Model) applyClear(action PendingAction) {
	switch action {
	case PendingClearCompleted:
		m.List.ClearCompleted()
		m.Status = StatusBar{Text: "completed tasks cleared"}
	case PendingClearAll:
		m.List.ClearAll()
		m.Status = StatusBar{Text: "all tasks cleared"}
	}
	m.consumeSignal()
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y", "enter":
		m.applyClear(m.Pending)
	default:
		m.Status = StatusBar{Text: "cancelled"}
	}
	m.Pending = PendingNone
	m.Mode = ModeBrowse
	return m
}

func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeBrowse
		m.quickAddInput.Blur()
		m.Status = StatusBar{}
		return m
	case "enter":
		text, priority := splitPrioritySuffix(m.quickAddInput.Value())
		before := m.List.Len()
		m.List.Add(text, priority)
		m.consumeSignal()
		if m.List.Len() == before {
			m.Status = StatusBar{Text: "empty task ignored", IsError: true}
		} else {
			m.Status = StatusBar{Text: "task added"}
		}
		m.quickAddInput.SetValue("")
		return m
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeBrowse
		m.EditingID = 0
		m.editInput.Blur()
		m.Status = StatusBar{Text: "edit cancelled"}
		return m
	case "enter":
		m.List.Update(m.EditingID, m.editInput.Value())
		m.consumeSignal()
		m.Mode = ModeBrowse
		m.EditingID = 0
		m.editInput.Blur()
		m.Status = StatusBar{Text: "task updated"}
		return m
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeBrowse
		m.SearchQuery = ""
		m.searchInput.Blur()
		m.reload()
		return m
	case "enter":
		m.Mode = ModeBrowse
		m.searchInput.Blur()
		return m
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	_ = cmd
	m.SearchQuery = m.searchInput.Value()
	m.reload()
	return m
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	side := ""
	if m.HelpVisible {
		side = m.renderHelpView()
	}
	if m.Mode == ModeConfirm {
		side = views.RenderConfirm(views.ConfirmData{Question: m.confirmQuestion()})
	}

	header := "todotui"
	if m.SearchQuery != "" {
		header = fmt.Sprintf("todotui | search: %q", m.SearchQuery)
	}

	return views.RenderApp(views.AppData{
		Header:      header,
		Tabs:        views.RenderTabs([]string{string(FilterAll), string(FilterActive), string(FilterCompleted)}, m.filterIndex()),
		List:        m.renderTaskList(),
		InputLine:   m.renderInputLine(),
		StatusLine:  status,
		StatusError: m.Status.IsError,
		SidePanel:   side,
		Footer: fmt.Sprintf("keys: %s add | %s edit | space toggle | %s del | %s/%s move | %s search | %s cmd | %s/%s clear | %s help | %s quit",
			m.Keys.Add, m.Keys.Edit, m.Keys.Delete, m.Keys.MoveUp, m.Keys.MoveDown,
			m.Keys.Search, m.Keys.Palette, m.Keys.ClearCompleted, m.Keys.ClearAll, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderTaskList() string {
	items := make([]views.TaskItemData, 0, len(m.Visible))
	for i, task := range m.Visible {
		item := views.TaskItemData{
			ID:        task.ID,
			Text:      task.Text,
			Completed: task.Completed,
			Priority:  string(task.Priority),
			Selected:  i == m.Cursor && m.Mode == ModeBrowse,
		}
		if m.Mode == ModeEdit && task.ID == m.EditingID {
			item.Editing = true
			item.EditView = m.editInput.View()
		}
		items = append(items, item)
	}
	hint := "nothing here yet — press 'a' to add a task"
	if m.SearchQuery != "" || m.Filter != FilterAll {
		hint = "no tasks match"
	}
	return views.RenderTaskList(views.TaskListData{
		Items:          items,
		EmptyHint:      hint,
		ActiveCount:    m.List.ActiveCount(),
		CompletedCount: m.List.CompletedCount(),
	})
}

func (m Model) renderInputLine() string {
	switch m.Mode {
	case ModeAdd:
		return "add: " + m.quickAddInput.View()
	case ModeSearch:
		return "search: " + m.searchInput.View()
	case ModePalette:
		return ": " + m.commandInput.View()
	}
	return ""
}

func (m Model) confirmQuestion() string {
	switch m.Pending {
	case PendingClearCompleted:
		return fmt.Sprintf("Clear %d completed task(s)?", m.List.CompletedCount())
	case PendingClearAll:
		return fmt.Sprintf("Clear ALL %d task(s)?", m.List.Len())
	}
	return "Proceed?"
}

// splitPrioritySuffix strips a trailing !low/!medium/!high token from quick
// add input. No suffix (or a bad one) leaves the priority to the list's
// default.
func splitPrioritySuffix(input string) (string, domainmodel.Priority) {
	fields := strings.Fields(input)
	if n := len(fields); n > 0 && len(fields[n-1]) > 1 && fields[n-1][0] == '!' {
		if p, err := domainmodel.ParsePriority(fields[n-1][1:]); err == nil {
			return strings.Join(fields[:n-1], " "), p
		}
	}
	return input, domainmodel.Priority("")
}
