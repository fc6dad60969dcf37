package cmd

import (
	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/app"
)

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	return app.Run(app.Options{Tasks: newTaskService(st)})
}
