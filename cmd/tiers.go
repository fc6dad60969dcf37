package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/ui/theme"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show the difficulty tiers with their XP and time estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		infos := make([]difficulty.Info, 0, 3)
		for _, t := range difficulty.AllTiers() {
			infos = append(infos, difficulty.InfoFor(t))
		}
		if asJSON {
			return printJSON(out, infos)
		}

		for _, info := range infos {
			fmt.Fprintln(out, theme.TierBadge(info.Tier))
			fmt.Fprintf(out, "  +%d XP, ~%d min, color %s\n", info.XP, info.Minutes, info.Color)
			if kw := difficulty.Keywords(info.Tier); len(kw) > 0 {
				fmt.Fprintf(out, "  keywords: %d, e.g. %q\n", len(kw), kw[0])
			}
		}
		return nil
	},
}

func init() {
	tiersCmd.Flags().Bool("json", false, "Print tiers as JSON")
}
