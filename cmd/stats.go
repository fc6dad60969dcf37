package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show XP, level and streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := newTaskService(st).Stats(cmd.Context(), time.Now())
		if err != nil {
			return fmt.Errorf("compute stats: %w", err)
		}
		if asJSON {
			return printJSON(out, stats)
		}

		p := stats.Progress
		fmt.Fprintln(out, components.LevelBar(p.Level, p.IntoLevel, p.LevelSpan, 48).View())
		fmt.Fprintf(out, "Total XP:    %d (%d to level %d)\n", stats.TotalXP, p.ToNextLevel, p.Level+1)
		fmt.Fprintf(out, "Streak:      %d day(s), next milestone %d\n", stats.Streak, stats.NextStreakMilestone)
		fmt.Fprintf(out, "Tasks:       %d open, %d completed\n", stats.Open, stats.Completed)
		for _, t := range difficulty.AllTiers() {
			fmt.Fprintf(out, "  %s %-8s %d\n", difficulty.EmojiForTier(t), t, stats.CompletedByTier[t])
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print stats as JSON")
}
