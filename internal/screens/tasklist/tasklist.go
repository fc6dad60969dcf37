// Package tasklist is the home screen: open or completed tasks with their
// difficulty badges.
package tasklist

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/router"
	"github.com/focusflow/focusflow/internal/screen"
	"github.com/focusflow/focusflow/internal/screens/newtask"
	"github.com/focusflow/focusflow/internal/store"
	"github.com/focusflow/focusflow/internal/tasks"
	"github.com/focusflow/focusflow/internal/ui/components"
	"github.com/focusflow/focusflow/internal/ui/layout"
	"github.com/focusflow/focusflow/internal/ui/theme"
)

type loadedMsg struct {
	tasks []tasks.Task
	err   error
}

type completedMsg struct {
	completion *tasks.Completion
	err        error
}

// Screen lists tasks and completes them.
type Screen struct {
	svc           *tasks.Service
	now           func() time.Time
	showCompleted bool
	tasks         []tasks.Task
	list          components.List
	flash         string
	err           error
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

func New(svc *tasks.Service) *Screen {
	return &Screen{svc: svc, now: time.Now}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

func (s *Screen) Title() string {
	if s.showCompleted {
		return "Completed"
	}
	return "Tasks"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	toggle := "Show completed"
	if s.showCompleted {
		toggle = "Show open"
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "n", Description: "New task"},
	}
	if !s.showCompleted {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Done"})
	}
	return append(hints,
		layout.KeyHint{Key: "Tab", Description: toggle},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *Screen) status() store.TaskStatus {
	if s.showCompleted {
		return store.StatusCompleted
	}
	return store.StatusOpen
}

func (s *Screen) load() tea.Cmd {
	svc, status := s.svc, s.status()
	return func() tea.Msg {
		list, err := svc.List(context.Background(), tasks.ListOptions{Status: status})
		return loadedMsg{tasks: list, err: err}
	}
}

func (s *Screen) complete(id string) tea.Cmd {
	svc, now := s.svc, s.now()
	return func() tea.Msg {
		c, err := svc.Complete(context.Background(), id, now)
		return completedMsg{completion: c, err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.err = msg.err
		s.tasks = msg.tasks
		s.list.SetItems(s.items())
		return s, nil

	case completedMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.err = nil
		s.flash = Celebration(msg.completion)
		return s, func() tea.Msg { return screen.TasksChangedMsg{} }

	case screen.TasksChangedMsg:
		return s, s.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			next := newtask.New(s.svc)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		case "tab":
			s.showCompleted = !s.showCompleted
			s.flash = ""
			s.list.Selected = 0
			return s, s.load()
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *Screen) items() []components.ListItem {
	items := make([]components.ListItem, 0, len(s.tasks))
	for _, t := range s.tasks {
		emoji := lipgloss.NewStyle().Foreground(theme.TierColor(t.Tier)).Render(difficulty.EmojiForTier(t.Tier))
		item := components.ListItem{
			Label:  emoji + " " + theme.Body.Render(t.Title),
			Detail: fmt.Sprintf("~%d min · +%d XP", t.Minutes, t.XP),
		}
		if t.Completed() {
			item.Label = emoji + " " + theme.Done.Render(t.Title)
			item.Detail = "done " + t.CompletedAt.Local().Format("Jan 2 15:04")
		} else {
			id := t.ID
			item.Action = func() tea.Cmd { return s.complete(id) }
		}
		items = append(items, item)
	}
	return items
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	heading := fmt.Sprintf("Open tasks (%d)", len(s.tasks))
	if s.showCompleted {
		heading = fmt.Sprintf("Completed tasks (%d)", len(s.tasks))
	}
	b.WriteString(theme.Title.Render(heading))
	b.WriteString("\n\n")

	if len(s.tasks) == 0 {
		if s.showCompleted {
			b.WriteString(theme.Hint.Render("Nothing completed yet."))
		} else {
			b.WriteString(theme.Hint.Render("No open tasks. Press n to add one."))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(s.list.View(height - 8))
	}

	if item, ok := s.selected(); ok && !layout.IsCompactHeight(height) {
		b.WriteString("\n")
		b.WriteString(theme.TierBadge(item.Tier))
		if item.ManualTier {
			b.WriteString(theme.Hint.Render("  (set manually)"))
		}
		b.WriteString("\n")
	}

	if s.flash != "" {
		b.WriteString("\n")
		b.WriteString(theme.Celebrate.Render(s.flash))
	}
	if s.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render("Error: " + s.err.Error()))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *Screen) selected() (tasks.Task, bool) {
	if s.list.Selected < 0 || s.list.Selected >= len(s.tasks) {
		return tasks.Task{}, false
	}
	return s.tasks[s.list.Selected], true
}

// Celebration is the one-line message shown after finishing a task.
func Celebration(c *tasks.Completion) string {
	parts := []string{fmt.Sprintf("+%d XP for %q", c.XPAwarded, c.Task.Title)}
	if c.LeveledUp {
		parts = append(parts, fmt.Sprintf("Level up! You reached level %d", c.Level))
	}
	switch {
	case c.StreakMilestone:
		parts = append(parts, fmt.Sprintf("%d-day streak!", c.Streak))
	case c.Streak > 1:
		parts = append(parts, fmt.Sprintf("★ %d day streak", c.Streak))
	}
	return strings.Join(parts, "  ·  ")
}
