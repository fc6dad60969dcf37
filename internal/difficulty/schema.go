package difficulty

import "github.com/focusflow/focusflow/internal/llm"

// AdviceSchema defines the JSON schema for LLM second-opinion responses.
var AdviceSchema = &llm.Schema{
	Name:        "difficulty-advice",
	Description: "Second opinion on how demanding a task is for a neurodivergent user",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tier": map[string]any{
				"type":        "string",
				"enum":        []any{"easy", "medium", "hard"},
				"description": "The difficulty tier the task belongs to",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Confidence score (0.0–1.0) for the chosen tier",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One encouraging sentence explaining the choice",
			},
		},
		"required":             []any{"tier", "confidence", "reasoning"},
		"additionalProperties": false,
	},
}
