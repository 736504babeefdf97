package update

import (
	"github.com/charmbracelet/bubbles/key"

	"todotui/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `# todotui

Tasks live in a local SQLite file and survive restarts.

- **add**: press ` + "`a`" + `, type text, optional ` + "`!low`" + ` / ` + "`!high`" + ` suffix
- **edit**: ` + "`e`" + ` on the selected task, ` + "`enter`" + ` saves, ` + "`esc`" + ` cancels
- **reorder**: ` + "`J`" + ` / ` + "`K`" + ` on the unfiltered list
- **clear**: ` + "`C`" + ` completed, ` + "`A`" + ` all (both ask first)
- **palette**: ` + "`:`" + ` accepts the textual command syntax
`

func (m Model) renderHelpView() string {
	return views.RenderHelpPanel(views.HelpPanelData{
		Markdown: helpMarkdown,
		HelpView: m.helpModel.View(helpKeyMap{
			short: m.helpBindings(),
			full:  [][]key.Binding{m.helpBindings()},
		}),
	})
}

func (m Model) bindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Add, Action: "add task"},
		{Key: m.Keys.Edit, Action: "edit task"},
		{Key: "space", Action: "toggle done"},
		{Key: m.Keys.Delete, Action: "delete task"},
		{Key: m.Keys.MoveUp + "/" + m.Keys.MoveDown, Action: "move task"},
		{Key: "tab 1 2 3", Action: "filter all/active/completed"},
		{Key: m.Keys.Search, Action: "search"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.ClearCompleted, Action: "clear completed"},
		{Key: m.Keys.ClearAll, Action: "clear all"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	bindings := m.bindings()
	out := make([]key.Binding, 0, len(bindings))
	for _, kb := range bindings {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
