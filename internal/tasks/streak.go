package tasks

import "time"

var streakMilestones = []int{3, 7, 14, 30}

// NextStreakMilestone returns the next milestone above current. Past 30
// days every multiple of 30 counts.
func NextStreakMilestone(current int) int {
	for _, m := range streakMilestones {
		if m > current {
			return m
		}
	}
	return (current/30 + 1) * 30
}

// IsStreakMilestone reports whether a streak of n days is worth celebrating.
func IsStreakMilestone(n int) bool {
	if n <= 0 {
		return false
	}
	for _, m := range streakMilestones {
		if m == n {
			return true
		}
	}
	return n > 30 && n%30 == 0
}

type day struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) day {
	y, m, d := t.Date()
	return day{y, m, d}
}

// DayStreak counts consecutive calendar days, in now's location, that have
// at least one completion. The run must end today or yesterday; an older
// run is broken and counts as zero.
func DayStreak(completions []time.Time, now time.Time) int {
	loc := now.Location()
	days := make(map[day]bool, len(completions))
	for _, c := range completions {
		days[dayOf(c.In(loc))] = true
	}

	cursor := now
	if !days[dayOf(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
		if !days[dayOf(cursor)] {
			return 0
		}
	}

	n := 0
	for days[dayOf(cursor)] {
		n++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return n
}
