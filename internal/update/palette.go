package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"todotui/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeBrowse
		m.commandInput.Blur()
		m.Status = StatusBar{}
		return m
	case "enter":
		input := m.commandInput.Value()
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Mode = ModeBrowse
		return m.executePalette(input)
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) executePalette(input string) Model {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	// The two destructive commands route through the same confirmation gate
	// as their key bindings.
	if m.ConfirmDestructive {
		switch cmd.Type {
		case commands.TypeClearCompleted:
			return m.requestClear(PendingClearCompleted)
		case commands.TypeClearAll:
			return m.requestClear(PendingClearAll)
		}
	}

	result, err := commands.Execute(cmd, m.paletteHandlers())
	m.consumeSignal()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: result.Message}
	return m
}

func (m *Model) paletteHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			before := m.List.Len()
			m.List.Add(args.Text, args.Priority)
			if m.List.Len() == before {
				return commands.Result{Message: "empty task ignored"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("added %q", args.Text)}, nil
		},
		Toggle: func(args commands.ToggleArgs) (commands.Result, error) {
			if _, ok := m.List.Get(args.ID); !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d", args.ID)}, nil
			}
			m.List.Toggle(args.ID)
			return commands.Result{Message: fmt.Sprintf("toggled #%d", args.ID)}, nil
		},
		Delete: func(args commands.DeleteArgs) (commands.Result, error) {
			if _, ok := m.List.Get(args.ID); !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d", args.ID)}, nil
			}
			m.List.Delete(args.ID)
			return commands.Result{Message: fmt.Sprintf("deleted #%d", args.ID)}, nil
		},
		Update: func(args commands.UpdateArgs) (commands.Result, error) {
			if _, ok := m.List.Get(args.ID); !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d", args.ID)}, nil
			}
			m.List.Update(args.ID, args.Text)
			return commands.Result{Message: fmt.Sprintf("updated #%d", args.ID)}, nil
		},
		ClearCompleted: func() (commands.Result, error) {
			m.List.ClearCompleted()
			return commands.Result{Message: "completed tasks cleared"}, nil
		},
		ClearAll: func() (commands.Result, error) {
			m.List.ClearAll()
			return commands.Result{Message: "all tasks cleared"}, nil
		},
		Search: func(args commands.SearchArgs) (commands.Result, error) {
			m.SearchQuery = strings.TrimSpace(args.Query)
			m.reload()
			if m.SearchQuery == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("%d task(s) match %q", len(m.Visible), m.SearchQuery)}, nil
		},
	}
}
