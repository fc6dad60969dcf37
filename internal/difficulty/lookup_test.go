package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookups(t *testing.T) {
	tests := []struct {
		tier    Tier
		xp      int
		minutes int
		emoji   string
		color   string
		label   string
	}{
		{TierEasy, 25, 15, "🌱", "#22C55E", "Quick & Simple"},
		{TierMedium, 50, 45, "⚡", "#F59E0B", "Moderate Effort"},
		{TierHard, 100, 120, "🔥", "#F43F5E", "Challenging"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			for i := 0; i < 2; i++ {
				assert.Equal(t, tt.xp, XPForTier(tt.tier))
				assert.Equal(t, tt.minutes, TimeForTier(tt.tier))
				assert.Equal(t, tt.emoji, EmojiForTier(tt.tier))
				assert.Equal(t, tt.color, ColorForTier(tt.tier))
				assert.Equal(t, tt.label, DescriptionForTier(tt.tier))
			}
		})
	}
}

func TestLookups_UnknownTierFallsBackToMedium(t *testing.T) {
	for _, bogus := range []Tier{"", "legendary", "EASY"} {
		assert.Equal(t, XPForTier(TierMedium), XPForTier(bogus))
		assert.Equal(t, TimeForTier(TierMedium), TimeForTier(bogus))
		assert.Equal(t, EmojiForTier(TierMedium), EmojiForTier(bogus))
		assert.Equal(t, ColorForTier(TierMedium), ColorForTier(bogus))
		assert.Equal(t, DescriptionForTier(TierMedium), DescriptionForTier(bogus))
		assert.Equal(t, TierMedium, InfoFor(bogus).Tier)
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in     string
		want   Tier
		wantOK bool
	}{
		{"easy", TierEasy, true},
		{" Medium ", TierMedium, true},
		{"HARD", TierHard, true},
		{"", "", false},
		{"epic", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTier(tt.in)
		require.Equal(t, tt.wantOK, ok, "ParseTier(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseTier(%q)", tt.in)
	}
}

func TestTierOrder(t *testing.T) {
	assert.True(t, TierEasy.Less(TierMedium))
	assert.True(t, TierMedium.Less(TierHard))
	assert.False(t, TierHard.Less(TierEasy))
	assert.False(t, TierMedium.Less(TierMedium))
	assert.Equal(t, []Tier{TierEasy, TierMedium, TierHard}, AllTiers())
}

func TestKeywordsReturnsCopy(t *testing.T) {
	kw := Keywords(TierEasy)
	require.NotEmpty(t, kw)
	kw[0] = "mutated"
	assert.NotEqual(t, "mutated", Keywords(TierEasy)[0])
	assert.Equal(t, Keywords(TierMedium), Keywords("unknown"))
}
