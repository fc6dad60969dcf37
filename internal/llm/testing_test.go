package llm

// adviceTestSchema mirrors the shape of the difficulty advice schema
// without importing the difficulty package.
func adviceTestSchema() *Schema {
	return &Schema{
		Name:        "test-advice",
		Description: "A tier suggestion",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tier":       map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
				"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				"reasoning":  map[string]any{"type": "string"},
				"steps": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required":             []any{"tier", "confidence"},
			"additionalProperties": false,
		},
	}
}

const adviceJSON = `{"tier":"hard","confidence":0.7,"reasoning":"Several unfamiliar steps"}`
