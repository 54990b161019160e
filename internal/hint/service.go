// Package hint asks a language model for a short nudge on the active
// challenge.
package hint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/sqlchallenge/internal/llm"
	"github.com/abhisek/sqlchallenge/internal/schema"
)

// ErrDisabled is returned when no LLM provider is configured.
var ErrDisabled = errors.New("hints are disabled: no LLM provider configured")

// ErrRevealsAnswer is returned when the model hands back the reference
// query instead of a hint.
var ErrRevealsAnswer = errors.New("hint revealed the answer")

// Service generates hints. The zero provider disables it.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a hint service. provider may be nil.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether hints can be requested.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

type hintOutput struct {
	Hint    string `json:"hint"`
	Concept string `json:"concept"`
}

// Hint requests a single hint for in.
func (s *Service) Hint(ctx context.Context, in Input) (*Hint, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	ctx = llm.WithPurpose(ctx, "hint")

	schemaText, err := schema.Render(in.Challenge.Topic)
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in, schemaText)},
		},
		Schema:      HintSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("hint generation: %w", err)
	}

	var out hintOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse hint response: %w", err)
	}
	if revealsAnswer(out.Hint, in.Challenge.ReferenceSQL) {
		slog.Warn("discarded hint containing the reference query",
			"challenge_id", in.Challenge.ID, "model", resp.Model)
		return nil, ErrRevealsAnswer
	}

	return &Hint{Text: strings.TrimSpace(out.Hint), Concept: out.Concept}, nil
}

// revealsAnswer reports whether text contains the reference query, ignoring
// case and whitespace.
func revealsAnswer(text, reference string) bool {
	ref := squash(reference)
	return ref != "" && strings.Contains(squash(text), ref)
}

func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
