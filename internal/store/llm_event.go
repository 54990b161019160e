package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insert(ctx, llmRequestEventsTable,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", fieldErrorMessage},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) LLMUsage(ctx context.Context) ([]ModelUsage, error) {
	b := r.builder()
	sel := b.Select(
		"provider",
		"model",
		entsql.As(entsql.Count("*"), "requests"),
		entsql.As("SUM(CASE WHEN success THEN 0 ELSE 1 END)", "failures"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
	).
		From(b.Table(llmRequestEventsTable)).
		GroupBy("provider", "model").
		OrderBy("provider", "model")

	var rows []struct {
		Provider     string `sql:"provider"`
		Model        string `sql:"model"`
		Requests     int    `sql:"requests"`
		Failures     int    `sql:"failures"`
		InputTokens  int    `sql:"input_tokens"`
		OutputTokens int    `sql:"output_tokens"`
	}
	if err := r.scanAll(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}

	usage := make([]ModelUsage, len(rows))
	for i, row := range rows {
		usage[i] = ModelUsage(row)
	}
	return usage, nil
}
