package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type actionMsg struct{ id string }

func testItems() []ListItem {
	mk := func(id string) ListItem {
		return ListItem{Label: id, Action: func() tea.Cmd {
			return func() tea.Msg { return actionMsg{id: id} }
		}}
	}
	return []ListItem{mk("task-a"), mk("task-b"), mk("task-c")}
}

func TestList_Navigation(t *testing.T) {
	l := NewList(testItems())

	l, _ = l.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	l, _ = l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if l.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", l.Selected)
	}

	l, _ = l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if l.Selected != 2 {
		t.Errorf("Selected moved past the end: %d", l.Selected)
	}

	l, _ = l.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	if l.Selected != 1 {
		t.Errorf("Selected = %d, want 1", l.Selected)
	}
}

func TestList_EnterRunsAction(t *testing.T) {
	l := NewList(testItems())
	l.Selected = 1

	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command from enter")
	}
	if got := cmd().(actionMsg); got.id != "task-b" {
		t.Errorf("action for %q, want task-b", got.id)
	}
}

func TestList_EmptyIsSafe(t *testing.T) {
	l := NewList(nil)
	l, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command on empty list")
	}
	if _, ok := l.Current(); ok {
		t.Error("Current should report false on empty list")
	}
	if l.View(5) != "" {
		t.Error("expected empty view")
	}
}

func TestList_SetItemsClampsCursor(t *testing.T) {
	l := NewList(testItems())
	l.Selected = 2
	l.SetItems(testItems()[:1])
	if l.Selected != 0 {
		t.Errorf("Selected = %d, want 0", l.Selected)
	}
}

func TestList_ViewScrollsToSelection(t *testing.T) {
	l := NewList(testItems())
	l.Selected = 2
	view := l.View(2)
	if strings.Contains(view, "task-a") {
		t.Errorf("first row should be scrolled out:\n%s", view)
	}
	if !strings.Contains(view, "task-c") {
		t.Errorf("selected row missing:\n%s", view)
	}
}

func TestLevelBar(t *testing.T) {
	bar := LevelBar(2, 50, 200, 40)
	if bar.Percent != 0.25 {
		t.Errorf("Percent = %v, want 0.25", bar.Percent)
	}
	if !strings.Contains(bar.View(), "25%") {
		t.Errorf("view missing percent: %q", bar.View())
	}
	if LevelBar(0, 0, 0, 40).Percent != 0 {
		t.Error("zero span should render empty")
	}
}
