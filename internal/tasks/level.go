package tasks

import "math"

// XPRequiredCoef scales the leveling curve: XP_req(L) = 100 * L^1.5.
const XPRequiredCoef = 100.0

// XPRequiredForLevel returns the total XP needed to reach level. Level 0
// needs nothing.
func XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	l := float64(level)
	n := int64(math.Ceil(XPRequiredCoef * l * math.Sqrt(l)))
	if level > maxExactLevel {
		return int(n)
	}

	// 100 * L^1.5 = sqrt(10000 * L^3); settle the float estimate on the
	// smallest n with n*n >= 10000 * L^3.
	x := int64(XPRequiredCoef*XPRequiredCoef) * int64(level) * int64(level) * int64(level)
	for n > 0 && (n-1)*(n-1) >= x {
		n--
	}
	for n*n < x {
		n++
	}
	return int(n)
}

// maxExactLevel keeps 10000 * L^3 inside int64.
const maxExactLevel = 90_000

// LevelForTotalXP returns the highest level L with totalXP >= XPRequiredForLevel(L).
func LevelForTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 0
	}

	// Exponential search for an upper bound, then binary search.
	low, high := 0, 1
	for XPRequiredForLevel(high) <= totalXP {
		low = high
		high *= 2
		if high > 1_000_000 {
			break
		}
	}
	for low+1 < high {
		mid := low + (high-low)/2
		if XPRequiredForLevel(mid) <= totalXP {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}

// LevelProgress describes where totalXP sits inside its level.
type LevelProgress struct {
	Level       int `json:"level"`
	IntoLevel   int `json:"intoLevel"`   // XP earned since reaching Level
	LevelSpan   int `json:"levelSpan"`   // XP between Level and Level+1
	ToNextLevel int `json:"toNextLevel"` // XP still needed for Level+1
}

func ProgressFor(totalXP int) LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}
	level := LevelForTotalXP(totalXP)
	floor := XPRequiredForLevel(level)
	next := XPRequiredForLevel(level + 1)
	return LevelProgress{
		Level:       level,
		IntoLevel:   totalXP - floor,
		LevelSpan:   next - floor,
		ToNextLevel: next - totalXP,
	}
}
