package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "focusflow", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if res.UpdateAvailable {
			fmt.Fprintf(out, "Update available: %s (%s)\nRun: focusflow update\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Fprintf(out, "Latest release: %s\n", res.LatestVersion)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
