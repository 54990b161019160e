package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/sqlchallenge/internal/store"
)

// RecordingProvider appends an event for every request and logs its outcome.
// Recording failures are logged and never fail the request.
type RecordingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
}

// WithRecording wraps p so each call is stored in repo.
func WithRecording(p Provider, providerName string, repo store.EventRepo) Provider {
	return &RecordingProvider{inner: p, provider: providerName, repo: repo}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  r.provider,
		Model:     r.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	slog.Debug("llm request",
		"provider", data.Provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
		"error", err,
	)

	// Detach from ctx so a cancelled request is still recorded.
	if recErr := r.repo.AppendLLMRequest(context.WithoutCancel(ctx), data); recErr != nil {
		slog.Warn("failed to record LLM request event", "error", recErr)
	}

	return resp, err
}

func (r *RecordingProvider) ModelID() string {
	return r.inner.ModelID()
}
