package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/config"
	"github.com/focusflow/focusflow/internal/store"
	"github.com/focusflow/focusflow/internal/tasks"
)

var rootCmd = &cobra.Command{
	Use:   "focusflow",
	Short: "Task difficulty classifier and tracker",
	Long:  "focusflow sorts tasks into easy, medium and hard, suggests XP and a time estimate, and tracks your progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FOCUSFLOW_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/focusflow/config.yaml)")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the file named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FOCUSFLOW_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the database it points to.
func openStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return s, cfg, nil
}

func newTaskService(s *store.Store) *tasks.Service {
	return tasks.NewService(s.TaskRepo(), s.EventRepo())
}
