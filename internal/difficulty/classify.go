package difficulty

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// ConfidenceThreshold is the minimum confidence for an easy or hard
	// result to stand. Below it the task is reclassified as medium.
	ConfidenceThreshold = 0.6

	// DefaultConfidence is reported when no signal fired at all.
	DefaultConfidence = 0.5

	keywordWeight  = 1.0
	durationWeight = 0.5
	contextWeight  = 0.5
	lengthWeight   = 0.3

	shortTitleRunes = 20
	longTitleRunes  = 50

	fewWords        = 3
	fewWordsWeight  = 0.5
	manyWords       = 8
	manyWordsWeight = 0.3
)

// Input is the text a task is classified from.
type Input struct {
	Title       string
	Description string
}

// Result is the outcome of classifying a task.
type Result struct {
	Tier                 Tier     `json:"tier"`
	Confidence           float64  `json:"confidence"`
	Reasons              []string `json:"reasons"`
	SuggestedXP          int      `json:"suggestedXP"`
	SuggestedTimeMinutes int      `json:"suggestedTimeMinutes"`
}

// scores accumulates evidence per tier.
type scores struct {
	easy, medium, hard float64
}

func (s *scores) add(t Tier, w float64) {
	switch t {
	case TierEasy:
		s.easy += w
	case TierHard:
		s.hard += w
	default:
		s.medium += w
	}
}

func (s scores) max() float64 {
	return math.Max(s.easy, math.Max(s.medium, s.hard))
}

func (s scores) total() float64 {
	return s.easy + s.medium + s.hard
}

// winner picks the top-scoring tier. Ties go to easy first, then hard, and
// medium only when neither of the others reaches the maximum.
func (s scores) winner() Tier {
	m := s.max()
	switch {
	case s.easy == m:
		return TierEasy
	case s.hard == m:
		return TierHard
	default:
		return TierMedium
	}
}

// ClassifyInput is Classify for an Input value.
func ClassifyInput(in Input) Result {
	return Classify(in.Title, in.Description)
}

// Classify assigns a difficulty tier to a task from its title and optional
// description. It is deterministic, never fails, and is safe for concurrent
// use: it only reads the package keyword tables.
func Classify(title, description string) Result {
	text := strings.ToLower(strings.TrimSpace(title + " " + description))
	tokens := strings.Fields(text)

	var sc scores
	reasons := make([]string, 0, 4)

	for _, tok := range tokens {
		for _, t := range AllTiers() {
			if containsAny(tok, tierKeywords[t]) {
				sc.add(t, keywordWeight)
			}
		}
	}

	overrideMinutes := 0
	for _, b := range durationBuckets {
		if containsAny(text, b.phrases) {
			sc.add(b.tier, durationWeight)
			overrideMinutes = b.minutes
			reasons = append(reasons, b.reason)
			break
		}
	}

	if containsAny(text, increasingPhrases) {
		sc.add(TierHard, contextWeight)
		reasons = append(reasons, "Sounds unfamiliar or challenging")
	}
	if containsAny(text, decreasingPhrases) {
		sc.add(TierEasy, contextWeight)
		reasons = append(reasons, "Sounds routine or familiar")
	}

	switch n := utf8.RuneCountInString(title); {
	case n < shortTitleRunes:
		sc.add(TierEasy, lengthWeight)
		reasons = append(reasons, "Short title suggests a simple task")
	case n > longTitleRunes:
		sc.add(TierMedium, lengthWeight)
		reasons = append(reasons, "Long title suggests more detail to handle")
	}

	switch n := len(tokens); {
	case n <= fewWords:
		sc.add(TierEasy, fewWordsWeight)
		reasons = append(reasons, "Few words, likely a single step")
	case n > manyWords:
		sc.add(TierHard, manyWordsWeight)
		reasons = append(reasons, "Many words, likely several steps")
	}

	var tier Tier
	var confidence float64
	if m := sc.max(); m == 0 {
		tier = TierMedium
		confidence = DefaultConfidence
		reasons = append(reasons, "No strong signals found, defaulting to medium")
	} else {
		tier = sc.winner()
		confidence = math.Min(m/sc.total(), 1.0)
	}

	if confidence < ConfidenceThreshold && tier != TierMedium {
		reasons = append(reasons, fmt.Sprintf(
			"Low confidence in %s (%.0f%%), %s", tier, confidence*100, reclassifiedSuffix))
		tier = TierMedium
	}

	minutes := TimeForTier(tier)
	if overrideMinutes > 0 {
		minutes = overrideMinutes
	}

	return Result{
		Tier:                 tier,
		Confidence:           confidence,
		Reasons:              reasons,
		SuggestedXP:          XPForTier(tier),
		SuggestedTimeMinutes: minutes,
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if containsPhrase(s, sub) {
			return true
		}
	}
	return false
}

// containsPhrase is a substring test, except that a phrase starting with a
// digit must not continue a longer number: "1 hour" does not match
// "21 hours".
func containsPhrase(s, sub string) bool {
	if sub == "" || !isDigit(sub[0]) {
		return strings.Contains(s, sub)
	}
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], sub)
		if i < 0 {
			return false
		}
		at := from + i
		if at == 0 || !isDigit(s[at-1]) {
			return true
		}
		from = at + 1
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
