package difficulty

// Lookups below are total: an unknown tier gets the medium value.

// XPForTier returns the experience points a completed task of tier t earns.
func XPForTier(t Tier) int {
	switch t {
	case TierEasy:
		return 25
	case TierHard:
		return 100
	default:
		return 50
	}
}

// TimeForTier returns the default time estimate in minutes for tier t.
func TimeForTier(t Tier) int {
	switch t {
	case TierEasy:
		return 15
	case TierHard:
		return 120
	default:
		return 45
	}
}

// EmojiForTier returns the display glyph for tier t.
func EmojiForTier(t Tier) string {
	switch t {
	case TierEasy:
		return "🌱"
	case TierHard:
		return "🔥"
	default:
		return "⚡"
	}
}

// ColorForTier returns the hex color token for tier t.
func ColorForTier(t Tier) string {
	switch t {
	case TierEasy:
		return "#22C55E"
	case TierHard:
		return "#F43F5E"
	default:
		return "#F59E0B"
	}
}

// DescriptionForTier returns a short human label for tier t.
func DescriptionForTier(t Tier) string {
	switch t {
	case TierEasy:
		return "Quick & Simple"
	case TierHard:
		return "Challenging"
	default:
		return "Moderate Effort"
	}
}

// Info bundles every presentation attribute of a tier.
type Info struct {
	Tier        Tier   `json:"tier"`
	XP          int    `json:"xp"`
	Minutes     int    `json:"minutes"`
	Emoji       string `json:"emoji"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// InfoFor returns the lookup values for tier t. Unknown tiers report as medium.
func InfoFor(t Tier) Info {
	if !t.IsValid() {
		t = DefaultTier
	}
	return Info{
		Tier:        t,
		XP:          XPForTier(t),
		Minutes:     TimeForTier(t),
		Emoji:       EmojiForTier(t),
		Color:       ColorForTier(t),
		Description: DescriptionForTier(t),
	}
}
