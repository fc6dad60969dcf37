package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update focusflow to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		target, _ := cmd.Flags().GetString("version")
		out := cmd.OutOrStdout()
		inline := false
		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
		}, func(p selfupdate.UpdateProgress) {
			// Byte counts overwrite one line.
			if p.Stage == selfupdate.StageDownload && p.Bytes > 0 {
				fmt.Fprintf(out, "\r%s", p.Message)
				inline = true
				return
			}
			if inline {
				fmt.Fprintln(out)
				inline = false
			}
			fmt.Fprintln(out, p.Message)
		})
		if inline {
			fmt.Fprintln(out)
		}

		if err == nil {
			return nil
		}

		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
			return nil
		}
		if errors.Is(err, selfupdate.ErrAlreadyLatest) {
			fmt.Fprintln(out, "Already running the latest version.")
			return nil
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%w\n\nTry running: sudo focusflow update", err)
		}

		return err
	},
}

func init() {
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest")
}
