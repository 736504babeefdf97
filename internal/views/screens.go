package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID        int64
	Text      string
	Completed bool
	Priority  string
	Selected  bool
	Editing   bool
	EditView  string
}

type TaskListData struct {
	Items          []TaskItemData
	EmptyHint      string
	ActiveCount    int
	CompletedCount int
}

func RenderTaskList(data TaskListData) string {
	if len(data.Items) == 0 {
		return data.EmptyHint
	}
	var b strings.Builder
	for _, item := range data.Items {
		b.WriteString(renderTaskItem(item))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n%d active / %d completed", data.ActiveCount, data.CompletedCount))
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskItem(item TaskItemData) string {
	if item.Editing {
		return fmt.Sprintf("> %s", item.EditView)
	}

	cursor := "  "
	if item.Selected {
		cursor = "> "
	}
	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}

	text := item.Text
	if item.Completed {
		text = doneStyle.Render(text)
	} else if item.Selected {
		text = selectedStyle.Render(text)
	}

	badge := ""
	if style, ok := priorityStyle[item.Priority]; ok && item.Priority != "medium" {
		badge = " " + style.Render("!"+item.Priority)
	}

	return fmt.Sprintf("%s%s #%d %s%s", cursor, box, item.ID, text, badge)
}

type ConfirmData struct {
	Question string
}

func RenderConfirm(data ConfirmData) string {
	return panelStyle.Render(fmt.Sprintf("%s\n\n(y) yes   (n) cancel", data.Question))
}

type HelpPanelData struct {
	Markdown string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(RenderMarkdown(data.Markdown))
	if data.HelpView != "" {
		b.WriteString("\n")
		b.WriteString(data.HelpView)
	}
	return b.String()
}
