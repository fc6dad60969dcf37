package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/focusflow/focusflow/internal/router"
	"github.com/focusflow/focusflow/internal/screen"
	"github.com/focusflow/focusflow/internal/screens/tasklist"
	"github.com/focusflow/focusflow/internal/tasks"
	"github.com/focusflow/focusflow/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Tasks *tasks.Service
	Now   func() time.Time
}

type statsMsg struct {
	stats *tasks.Stats
	err   error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	status layout.Status
	width  int
	height int
}

// newAppModel creates a new AppModel with the task list screen.
func newAppModel(opts Options) AppModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return AppModel{
		router: router.New(tasklist.New(opts.Tasks)),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadStats())
}

func (m AppModel) loadStats() tea.Cmd {
	svc, now := m.opts.Tasks, m.opts.Now()
	return func() tea.Msg {
		st, err := svc.Stats(context.Background(), now)
		return statsMsg{stats: st, err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statsMsg:
		if msg.err == nil {
			m.status = layout.Status{
				Level:     msg.stats.Progress.Level,
				IntoLevel: msg.stats.Progress.IntoLevel,
				LevelSpan: msg.stats.Progress.LevelSpan,
				Streak:    msg.stats.Streak,
			}
		}
		return m, nil

	case screen.TasksChangedMsg:
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.loadStats())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
