package tasks

import "testing"

func TestXPRequiredForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 100},
		{2, 283}, // 100 * 2^1.5 = 282.84
		{3, 520}, // 519.6
		{4, 800},
		{9, 2700},
		{16, 6400},
		{81, 72900},
		{100, 100000},
	}
	for _, tt := range tests {
		if got := XPRequiredForLevel(tt.level); got != tt.want {
			t.Errorf("XPRequiredForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelForTotalXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{-50, 0},
		{0, 0},
		{99, 0},
		{100, 1},
		{282, 1},
		{283, 2},
		{799, 3},
		{800, 4},
		{2699, 8},
		{2700, 9},
		{100000, 100},
	}
	for _, tt := range tests {
		if got := LevelForTotalXP(tt.xp); got != tt.want {
			t.Errorf("LevelForTotalXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelForTotalXP_InverseOfRequirement(t *testing.T) {
	for level := 1; level <= 200; level++ {
		req := XPRequiredForLevel(level)
		if got := LevelForTotalXP(req); got != level {
			t.Fatalf("LevelForTotalXP(%d) = %d, want %d", req, got, level)
		}
		if got := LevelForTotalXP(req - 1); got != level-1 {
			t.Fatalf("LevelForTotalXP(%d) = %d, want %d", req-1, got, level-1)
		}
	}
}

func TestXPRequiredForLevel_PerfectSquaresAreExact(t *testing.T) {
	for root := 1; root <= 300; root++ {
		level := root * root
		want := 100 * level * root
		if got := XPRequiredForLevel(level); got != want {
			t.Fatalf("XPRequiredForLevel(%d) = %d, want %d", level, got, want)
		}
		if got := LevelForTotalXP(want); got != level {
			t.Fatalf("LevelForTotalXP(%d) = %d, want %d", want, got, level)
		}
	}
}

func TestXPRequiredForLevel_IsCeiling(t *testing.T) {
	for level := 1; level <= 5000; level++ {
		n := int64(XPRequiredForLevel(level))
		x := int64(10000) * int64(level) * int64(level) * int64(level)
		if n*n < x || (n-1)*(n-1) >= x {
			t.Fatalf("XPRequiredForLevel(%d) = %d is not ceil(sqrt(%d))", level, n, x)
		}
	}
}

func TestProgressFor(t *testing.T) {
	p := ProgressFor(150)
	want := LevelProgress{Level: 1, IntoLevel: 50, LevelSpan: 183, ToNextLevel: 133}
	if p != want {
		t.Fatalf("ProgressFor(150) = %+v, want %+v", p, want)
	}

	if p := ProgressFor(0); p.Level != 0 || p.ToNextLevel != 100 {
		t.Fatalf("ProgressFor(0) = %+v", p)
	}
}
