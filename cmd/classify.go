package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/focusflow/focusflow/internal/difficulty"
	"github.com/focusflow/focusflow/internal/llm"
)

type classifyOutput struct {
	difficulty.Result
	Emoji  string             `json:"emoji"`
	Color  string             `json:"color"`
	Label  string             `json:"label"`
	Advice *difficulty.Advice `json:"advice,omitempty"`
}

var classifyCmd = &cobra.Command{
	Use:   "classify <title> [description]",
	Short: "Classify a task without saving it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		advise, _ := cmd.Flags().GetBool("advise")
		out := cmd.OutOrStdout()

		title, description := taskArgs(args)
		r := difficulty.Classify(title, description)

		var advice *difficulty.Advice
		asked := false
		if advise {
			var err error
			advice, asked, err = secondOpinion(cmd, title, description, r)
			if err != nil {
				return err
			}
		}

		if asJSON {
			return printJSON(out, classifyOutput{
				Result: r,
				Emoji:  difficulty.EmojiForTier(r.Tier),
				Color:  difficulty.ColorForTier(r.Tier),
				Label:  difficulty.DescriptionForTier(r.Tier),
				Advice: advice,
			})
		}

		printResult(out, r)
		switch {
		case advice != nil:
			printAdvice(out, advice)
		case advise && !asked:
			fmt.Fprintln(out, "\nConfident enough; no second opinion needed.")
		}
		return nil
	},
}

// secondOpinion asks the configured LLM about r when its confidence is
// below the advisor threshold. asked reports whether a request was made.
func secondOpinion(cmd *cobra.Command, title, description string, r difficulty.Result) (*difficulty.Advice, bool, error) {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return nil, false, err
	}
	defer st.Close()

	if !difficulty.NeedsAdvice(r, cfg.Advisor.Threshold) {
		return nil, false, nil
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		return nil, false, fmt.Errorf("second opinion unavailable: %w", err)
	}
	advisor := difficulty.NewAdvisor(provider, difficulty.AdvisorConfig{
		MaxTokens:   cfg.Advisor.MaxTokens,
		Temperature: cfg.Advisor.Temperature,
	})

	advice, err := advisor.Advise(cmd.Context(), title, description, r)
	if err != nil {
		return nil, true, fmt.Errorf("second opinion: %w", err)
	}
	return advice, true, nil
}

func init() {
	classifyCmd.Flags().Bool("json", false, "Print the result as JSON")
	classifyCmd.Flags().Bool("advise", false, "Ask the configured LLM for a second opinion on low-confidence results")
}
