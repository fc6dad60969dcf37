package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/api"
	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/llm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the classifier and task API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var opts []api.Option
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			slog.Info("second opinions disabled", "reason", err)
		} else {
			advisor := difficulty.NewAdvisor(provider, difficulty.AdvisorConfig{
				MaxTokens:   cfg.Advisor.MaxTokens,
				Temperature: cfg.Advisor.Temperature,
			})
			opts = append(opts, api.WithAdvisor(advisor, cfg.Advisor.Threshold))
		}

		srv := api.NewServer(cfg.Server, newTaskService(st), opts...)
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", cfg.Server.Addr)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config and FOCUSFLOW_ADDR)")
}

