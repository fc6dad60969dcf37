package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/store"
	"github.com/focusflow/focusflow/internal/tasks"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFlag, _ := cmd.Flags().GetString("status")
		tierFlag, _ := cmd.Flags().GetString("tier")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		opts := tasks.ListOptions{Limit: limit}
		switch statusFlag {
		case "open":
			opts.Status = store.StatusOpen
		case "completed", "done":
			opts.Status = store.StatusCompleted
		case "all", "":
			opts.Status = store.StatusAny
		default:
			return fmt.Errorf("invalid status %q (want open, completed or all)", statusFlag)
		}
		if tierFlag != "" {
			tier, ok := difficulty.ParseTier(tierFlag)
			if !ok {
				return fmt.Errorf("invalid tier %q (want easy, medium or hard)", tierFlag)
			}
			opts.Tier = tier
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := newTaskService(st).List(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}

		if asJSON {
			if list == nil {
				list = []tasks.Task{}
			}
			return printJSON(out, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}
		for _, t := range list {
			printTaskLine(out, t)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("status", "open", "Filter by status: open, completed or all")
	listCmd.Flags().String("tier", "", "Filter by tier: easy, medium or hard")
	listCmd.Flags().IntP("limit", "n", 0, "Maximum number of tasks (0 = all)")
	listCmd.Flags().Bool("json", false, "Print tasks as JSON")
}
