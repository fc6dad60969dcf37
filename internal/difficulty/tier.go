package difficulty

import "strings"

// Tier is the difficulty bucket assigned to a task.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// DefaultTier is used whenever a tier is missing or unrecognized.
const DefaultTier = TierMedium

// AllTiers returns all tiers from easiest to hardest.
func AllTiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard}
}

// IsValid reports whether t is one of the known tiers.
func (t Tier) IsValid() bool {
	switch t {
	case TierEasy, TierMedium, TierHard:
		return true
	default:
		return false
	}
}

// Rank orders tiers easy < medium < hard. Unknown tiers rank as medium.
func (t Tier) Rank() int {
	switch t {
	case TierEasy:
		return 0
	case TierHard:
		return 2
	default:
		return 1
	}
}

// Less reports whether t is an easier tier than other.
func (t Tier) Less(other Tier) bool {
	return t.Rank() < other.Rank()
}

func (t Tier) String() string {
	return string(t)
}

// ParseTier parses user input into a Tier. Matching is case-insensitive and
// ignores surrounding whitespace.
func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", false
	}
	return t, true
}
