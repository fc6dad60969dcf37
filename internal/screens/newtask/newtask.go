// Package newtask is the task-creation dialog with a live difficulty preview.
package newtask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/router"
	"github.com/focusflow/focusflow/internal/screen"
	"github.com/focusflow/focusflow/internal/tasks"
	"github.com/focusflow/focusflow/internal/ui/components"
	"github.com/focusflow/focusflow/internal/ui/layout"
	"github.com/focusflow/focusflow/internal/ui/theme"
)

const (
	focusTitle = iota
	focusDescription
)

// createdMsg carries the result of saving the task. again keeps the dialog
// open for another task.
type createdMsg struct {
	task  *tasks.Task
	err   error
	again bool
}

// Screen collects a title and description and shows how the task would be
// classified while the user types.
type Screen struct {
	svc         *tasks.Service
	title       components.TextInput
	description components.TextInput
	focus       int
	override    *difficulty.Tier
	preview     difficulty.Result
	saving      bool
	err         error
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates the dialog with the title field focused.
func New(svc *tasks.Service) *Screen {
	s := &Screen{
		svc:         svc,
		title:       components.NewTextInput("Title", "What needs doing?", 200),
		description: components.NewTextInput("Description (optional)", "Any details that help", 1000),
	}
	s.refresh()
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.title.Focus()
}

func (s *Screen) Title() string {
	return "New Task"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch field"},
		{Key: "Ctrl+T", Description: "Set tier"},
		{Key: "Enter", Description: "Next / Save"},
		{Key: "Ctrl+S", Description: "Save & add another"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		s.saving = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		changed := func() tea.Msg { return screen.TasksChangedMsg{} }
		if msg.again {
			next := New(s.svc)
			return s, tea.Batch(changed, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} })
		}
		return s, tea.Batch(changed, func() tea.Msg { return router.PopScreenMsg{} })

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			if s.focus == focusTitle {
				return s, s.setFocus(focusDescription)
			}
			return s, s.setFocus(focusTitle)
		case "ctrl+t":
			s.override = nextOverride(s.override)
			s.refresh()
			return s, nil
		case "enter":
			if s.focus == focusTitle {
				if strings.TrimSpace(s.title.Value()) == "" {
					s.err = tasks.ErrTitleRequired
					return s, nil
				}
				return s, s.setFocus(focusDescription)
			}
			return s, s.save(false)
		case "ctrl+s":
			return s, s.save(true)
		}
	}

	var cmd tea.Cmd
	if s.focus == focusTitle {
		s.title, cmd = s.title.Update(msg)
	} else {
		s.description, cmd = s.description.Update(msg)
	}
	s.refresh()
	return s, cmd
}

func (s *Screen) setFocus(f int) tea.Cmd {
	s.focus = f
	if f == focusTitle {
		s.description.Blur()
		return s.title.Focus()
	}
	s.title.Blur()
	return s.description.Focus()
}

// refresh reclassifies the current input.
func (s *Screen) refresh() {
	title := strings.TrimSpace(s.title.Value())
	description := strings.TrimSpace(s.description.Value())
	s.preview = s.svc.Preview(title, description, s.override)
	if title != "" {
		s.err = nil
	}
}

func (s *Screen) save(again bool) tea.Cmd {
	if s.saving {
		return nil
	}
	if strings.TrimSpace(s.title.Value()) == "" {
		s.err = tasks.ErrTitleRequired
		return nil
	}
	s.saving = true

	svc := s.svc
	in := tasks.CreateInput{
		Title:       s.title.Value(),
		Description: s.description.Value(),
		Tier:        s.override,
	}
	return func() tea.Msg {
		task, err := svc.Create(context.Background(), in)
		return createdMsg{task: task, err: err, again: again}
	}
}

// nextOverride cycles none → easy → medium → hard → none.
func nextOverride(cur *difficulty.Tier) *difficulty.Tier {
	tiers := difficulty.AllTiers()
	if cur == nil {
		t := tiers[0]
		return &t
	}
	for i, t := range tiers {
		if t == *cur && i+1 < len(tiers) {
			next := tiers[i+1]
			return &next
		}
	}
	return nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.title.View())
	b.WriteString("\n\n")
	b.WriteString(s.description.View())
	b.WriteString("\n\n")

	b.WriteString(s.renderPreview(width, !layout.IsCompactHeight(height)))

	if s.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(errorText(s.err)))
	}
	if s.saving {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Saving..."))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *Screen) renderPreview(width int, showReasons bool) string {
	r := s.preview
	var lines []string

	lines = append(lines, theme.TierBadge(r.Tier))

	conf := fmt.Sprintf("Confidence %d%%", int(r.Confidence*100+0.5))
	tier := "auto"
	if s.override != nil {
		tier = "set to " + s.override.String()
	}
	lines = append(lines, theme.Body.Render(fmt.Sprintf("%s   ~%d min   +%d XP", conf, r.SuggestedTimeMinutes, r.SuggestedXP))+
		"   "+theme.Hint.Render("tier "+tier))

	if showReasons && len(r.Reasons) > 0 {
		lines = append(lines, "")
		for _, reason := range r.Reasons {
			lines = append(lines, theme.Subtitle.Render("• "+reason))
		}
	}

	cardWidth := width - 8
	if cardWidth < 20 {
		cardWidth = 20
	}
	return theme.Card.
		BorderForeground(theme.TierColor(r.Tier)).
		Width(cardWidth).
		Render(strings.Join(lines, "\n"))
}

func errorText(err error) string {
	if errors.Is(err, tasks.ErrTitleRequired) {
		return "A title is required."
	}
	return "Could not save task: " + err.Error()
}
