package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/focusflow/focusflow/internal/difficulty"
)

// Color palette, muted and low-contrast on purpose for long sessions.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Soft Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Done = lipgloss.NewStyle().
		Foreground(TextDim).
		Strikethrough(true)

	Celebrate = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// TierColor converts the tier's hex token into a terminal color.
func TierColor(t difficulty.Tier) color.Color {
	return lipgloss.Color(difficulty.ColorForTier(t))
}

// TierLabel is the plain-text badge: emoji, tier name and description.
func TierLabel(t difficulty.Tier) string {
	if !t.IsValid() {
		t = difficulty.DefaultTier
	}
	return difficulty.EmojiForTier(t) + " " + t.String() + " · " + difficulty.DescriptionForTier(t)
}

// TierBadge renders TierLabel in the tier's color.
func TierBadge(t difficulty.Tier) string {
	return lipgloss.NewStyle().
		Foreground(TierColor(t)).
		Bold(true).
		Render(TierLabel(t))
}
