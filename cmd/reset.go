package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all tasks and progress",
	Long:  "Delete all tasks, completions and XP. LLM request history is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("this deletes every task and all XP; re-run with --yes to confirm")
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := newTaskService(st).Reset(cmd.Context())
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s).\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
