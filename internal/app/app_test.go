package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/focusflow/focusflow/internal/router"
	"github.com/focusflow/focusflow/internal/store"
	"github.com/focusflow/focusflow/internal/tasks"
	"github.com/focusflow/focusflow/internal/ui/layout"
)

func newTestModel(t *testing.T) (AppModel, *tasks.Service) {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	svc := tasks.NewService(s.TaskRepo(), s.EventRepo())
	return newAppModel(Options{Tasks: svc}), svc
}

func TestApp_StatsFeedHeader(t *testing.T) {
	m, svc := newTestModel(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, tasks.CreateInput{Title: "Call mom"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Complete(ctx, task.ID, time.Now()); err != nil {
		t.Fatal(err)
	}

	model, _ := m.Update(m.loadStats()())
	m = model.(AppModel)
	want := layout.Status{Level: 0, IntoLevel: task.XP, LevelSpan: 100, Streak: 1}
	if m.status != want {
		t.Errorf("status = %+v, want %+v", m.status, want)
	}
}

func TestApp_ViewBeforeAndAfterResize(t *testing.T) {
	m, _ := newTestModel(t)
	m.View()

	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(AppModel)
	m.View()

	if got := m.footerHints(m.router.Active()); len(got) == 0 || got[0].Key != "↑↓" {
		t.Errorf("footer hints = %+v, want task list hints", got)
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestApp_EscAtRootIsNoop(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}
}

func TestApp_EscPopsPushedScreen(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	m.Update(cmd())
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the dialog")
	}
}
