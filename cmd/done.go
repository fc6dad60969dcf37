package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/screens/tasklist"
	"github.com/focusflow/focusflow/internal/tasks"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as completed and collect its XP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := newTaskService(st)
		task, err := svc.Resolve(cmd.Context(), args[0])
		if errors.Is(err, tasks.ErrNotFound) {
			return fmt.Errorf("no task with id %q", args[0])
		}
		if err != nil {
			return err
		}

		c, err := svc.Complete(cmd.Context(), task.ID, time.Now())
		if errors.Is(err, tasks.ErrAlreadyCompleted) {
			fmt.Fprintf(out, "%q is already done.\n", task.Title)
			return nil
		}
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(out, c)
		}
		fmt.Fprintln(out, tasklist.Celebration(c))
		return nil
	},
}

func init() {
	doneCmd.Flags().Bool("json", false, "Print the completion as JSON")
}
