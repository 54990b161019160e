package hint

import "github.com/abhisek/sqlchallenge/internal/llm"

// Concepts are the window-function ideas a hint can point at.
var Concepts = []string{
	"partition",
	"ordering",
	"frame",
	"ranking",
	"offset",
	"aggregate",
	"filtering",
	"syntax",
}

func conceptEnum() []any {
	out := make([]any, len(Concepts))
	for i, c := range Concepts {
		out[i] = c
	}
	return out
}

// HintSchema constrains the model to a short hint tagged with one concept.
var HintSchema = &llm.Schema{
	Name:        "sql-hint",
	Description: "A short nudge toward a correct window-function query",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One or two sentences pointing at what to change. Never a full query.",
			},
			"concept": map[string]any{
				"type":        "string",
				"enum":        conceptEnum(),
				"description": "The concept the learner is missing",
			},
		},
		"required":             []any{"hint", "concept"},
		"additionalProperties": false,
	},
}
