package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/tasks"
	"github.com/focusflow/focusflow/internal/ui/theme"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// taskArgs joins positional args into a title and optional description.
func taskArgs(args []string) (string, string) {
	if len(args) > 1 {
		return args[0], args[1]
	}
	return args[0], ""
}

func percent(f float64) int {
	return int(f*100 + 0.5)
}

func printResult(w io.Writer, r difficulty.Result) {
	fmt.Fprintln(w, theme.TierBadge(r.Tier))
	fmt.Fprintf(w, "Confidence:  %d%%\n", percent(r.Confidence))
	fmt.Fprintf(w, "XP:          +%d\n", r.SuggestedXP)
	fmt.Fprintf(w, "Time:        ~%d min\n", r.SuggestedTimeMinutes)
	if len(r.Reasons) > 0 {
		fmt.Fprintln(w, "Why:")
		for _, reason := range r.Reasons {
			fmt.Fprintf(w, "  • %s\n", reason)
		}
	}
}

func printAdvice(w io.Writer, a *difficulty.Advice) {
	verdict := "agrees"
	if !a.Agrees {
		verdict = "suggests " + a.Tier.String()
	}
	fmt.Fprintf(w, "\nSecond opinion (%s) %s, %d%% confident:\n", a.Model, verdict, percent(a.Confidence))
	fmt.Fprintf(w, "  %s\n", a.Reasoning)
}

func printTaskLine(w io.Writer, t tasks.Task) {
	mark := "[ ]"
	if t.Completed() {
		mark = "[x]"
	}
	title := t.Title
	if len([]rune(title)) > 48 {
		title = string([]rune(title)[:47]) + "…"
	}
	fmt.Fprintf(w, "%s %s  %-8s  %-48s  %4d XP  %4d min\n",
		mark, shortID(t.ID), difficulty.EmojiForTier(t.Tier)+" "+t.Tier.String(), title, t.XP, t.Minutes)
}

// shortID is the prefix shown in listings; done accepts it.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func rule(n int) string {
	return strings.Repeat("─", n)
}
