package difficulty

// Keyword matching is substring based: a keyword hits when it appears
// anywhere inside a token, so "checking" hits "check" and "syntax" hits "tax".
// Whether this should become exact-word or stemmed matching is still open;
// switching would shift scores for inputs that classify today.

// tierKeywords are matched against individual lowercase tokens.
var tierKeywords = map[Tier][]string{
	TierEasy: {
		"call", "text", "email", "reply", "buy", "pay", "check", "send",
		"water", "feed", "tidy", "wash", "brush", "drink", "snack",
		"stretch", "walk", "remind", "quick", "simple", "small", "pick",
		"file", "trash", "dishes", "shower", "vitamin", "pill", "meds",
	},
	TierMedium: {
		"meeting", "review", "prepare", "organize", "schedule", "clean",
		"cook", "plan", "appointment", "errand", "laundry", "grocer",
		"update", "fix", "write", "draft", "sort", "budget", "workout",
		"exercise", "homework", "declutter", "repair", "practice",
	},
	TierHard: {
		"comprehensive", "strategic", "presentation", "project", "research",
		"analy", "thesis", "essay", "tax", "migrate", "move", "build",
		"design", "develop", "learn", "study", "complex", "difficult",
		"overhaul", "renovate", "interview", "application", "deadline",
		"report", "launch",
	},
}

// durationBucket groups phrases that hint at how long a task takes.
type durationBucket struct {
	tier    Tier
	minutes int
	reason  string
	phrases []string
}

// durationBuckets are checked in order against the full text; the first
// bucket with a matching phrase wins.
var durationBuckets = []durationBucket{
	{
		tier:    TierEasy,
		minutes: 15,
		reason:  "Mentions a short time frame (~15 min)",
		phrases: []string{
			"quick", "a few minutes", "few mins", "a minute", "five minutes",
			"ten minutes", "5 min", "10 min",
		},
	},
	{
		tier:    TierMedium,
		minutes: 60,
		reason:  "Mentions about an hour (~60 min)",
		phrases: []string{
			"30 min", "half an hour", "half hour", "an hour", "1 hour",
			"one hour", "this afternoon", "this evening",
		},
	},
	{
		tier:    TierHard,
		minutes: 180,
		reason:  "Mentions a long time frame (~3 hours)",
		phrases: []string{
			"hours", "all day", "full day", "whole day", "weekend",
			"all week", "several days", "multi-day",
		},
	},
}

// increasingPhrases signal unfamiliar or daunting work.
var increasingPhrases = []string{
	"never done", "first time", "complicated", "difficult", "challenging",
	"overwhelm", "confusing", "don't know how", "not sure how",
	"unfamiliar", "stuck", "scary", "dread",
}

// decreasingPhrases signal routine, well-known work.
var decreasingPhrases = []string{
	"routine", "as usual", "again", "daily", "as always", "every day",
	"done before", "easy",
}

// Keywords returns a copy of the token keywords for a tier.
// Unknown tiers return the medium keywords.
func Keywords(t Tier) []string {
	kw, ok := tierKeywords[t]
	if !ok {
		kw = tierKeywords[DefaultTier]
	}
	out := make([]string, len(kw))
	copy(out, kw)
	return out
}
