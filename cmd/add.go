package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/tasks"
)

var addCmd = &cobra.Command{
	Use:   "add <title> [description]",
	Short: "Classify and save a task",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tierFlag, _ := cmd.Flags().GetString("tier")
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		in := tasks.CreateInput{}
		in.Title, in.Description = taskArgs(args)
		if tierFlag != "" {
			tier, ok := difficulty.ParseTier(tierFlag)
			if !ok {
				return fmt.Errorf("invalid tier %q (want easy, medium or hard)", tierFlag)
			}
			in.Tier = &tier
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		task, err := newTaskService(st).Create(cmd.Context(), in)
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(out, task)
		}
		fmt.Fprintf(out, "Added %s  %s\n", shortID(task.ID), task.Title)
		printResult(out, difficulty.Result{
			Tier:                 task.Tier,
			Confidence:           task.Confidence,
			Reasons:              task.Reasons,
			SuggestedXP:          task.XP,
			SuggestedTimeMinutes: task.Minutes,
		})
		return nil
	},
}

func init() {
	addCmd.Flags().String("tier", "", "Set the tier manually (easy, medium, hard)")
	addCmd.Flags().Bool("json", false, "Print the saved task as JSON")
}
