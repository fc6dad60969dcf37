package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/focusflow/focusflow/internal/ui/theme"
)

// ListItem is a single row of a List. Label may carry its own styling.
type ListItem struct {
	Label  string
	Detail string
	Action func() tea.Cmd
}

// List is a vertical, scrollable selection list.
type List struct {
	Items    []ListItem
	Selected int
}

// NewList creates a list with the first item selected.
func NewList(items []ListItem) List {
	return List{Items: items}
}

// SetItems replaces the items and keeps the cursor in range.
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	if l.Selected >= len(items) {
		l.Selected = len(items) - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
}

// Current returns the selected item, or false when the list is empty.
func (l List) Current() (ListItem, bool) {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return ListItem{}, false
	}
	return l.Items[l.Selected], true
}

// Update handles keyboard navigation. Enter and space run the selected
// item's Action.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Items)-1 {
			l.Selected++
		}
	case "home", "g":
		l.Selected = 0
	case "end", "G":
		if len(l.Items) > 0 {
			l.Selected = len(l.Items) - 1
		}
	case "enter", "space", " ":
		if item, ok := l.Current(); ok && item.Action != nil {
			return l, item.Action()
		}
	}

	return l, nil
}

// View renders at most height rows, scrolled so the selection is visible.
func (l List) View(height int) string {
	if height < 1 {
		height = len(l.Items)
	}
	start := 0
	if l.Selected >= height {
		start = l.Selected - height + 1
	}
	end := start + height
	if end > len(l.Items) {
		end = len(l.Items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		item := l.Items[i]
		line := "    " + item.Label
		if i == l.Selected {
			line = theme.Selected.Render("  ▸ ") + item.Label
		}
		if item.Detail != "" {
			line += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
