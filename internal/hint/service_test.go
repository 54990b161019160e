package hint

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/llm"
	"github.com/abhisek/sqlchallenge/internal/schema"
)

func salesRank(t *testing.T) challenge.Challenge {
	t.Helper()
	tmpl, ok := challenge.DefaultRegistry().Lookup(schema.TopicSales, challenge.CategoryRank)
	if !ok {
		t.Fatal("sales/rank missing from registry")
	}
	return challenge.Challenge{
		ID:           "c1",
		Topic:        schema.TopicSales,
		Category:     challenge.CategoryRank,
		Question:     tmpl.Question,
		ReferenceSQL: tmpl.ReferenceSQL,
	}
}

func TestService_Hint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"hint":    "  Rank inside OVER with ORDER BY sale_amount DESC.  ",
		"concept": "ranking",
	}))
	svc := NewService(mock, DefaultConfig())
	ch := salesRank(t)

	h, err := svc.Hint(context.Background(), Input{
		Challenge:    ch,
		Query:        "SELECT RANK() FROM sales",
		Outcome:      challenge.OutcomeUnevaluable,
		ErrorMessage: "misuse of window function rank()",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Text != "Rank inside OVER with ORDER BY sale_amount DESC." || h.Concept != "ranking" {
		t.Fatalf("hint = %+v", h)
	}

	req := mock.Calls[0]
	if req.Schema != HintSchema {
		t.Error("expected the hint schema on the request")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{ch.Question, "sale_amount", "SELECT RANK() FROM sales", "misuse of window function", challenge.CategoryRank.Label()} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(msg, ch.ReferenceSQL) {
		t.Error("prompt must not include the reference query")
	}
}

func TestService_EmptyQueryPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"hint": "Start with SELECT ... FROM sales.", "concept": "syntax"}))
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Hint(context.Background(), Input{Challenge: salesRank(t)}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "(nothing written yet)") {
		t.Error("expected placeholder for empty query")
	}
}

func TestService_Disabled(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	if svc.Enabled() {
		t.Fatal("service without provider should be disabled")
	}
	if _, err := svc.Hint(context.Background(), Input{Challenge: salesRank(t)}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestService_RejectsLeakedAnswer(t *testing.T) {
	ch := salesRank(t)
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"hint":    "Just run: " + strings.ToUpper(ch.ReferenceSQL),
		"concept": "ranking",
	}))
	_, err := NewService(mock, DefaultConfig()).Hint(context.Background(), Input{Challenge: ch})
	if !errors.Is(err, ErrRevealsAnswer) {
		t.Fatalf("expected ErrRevealsAnswer, got %v", err)
	}
}

func TestService_InvalidConcept(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"hint": "x", "concept": "joins"}))
	_, err := NewService(mock, DefaultConfig()).Hint(context.Background(), Input{Challenge: salesRank(t)})
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestService_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	_, err := NewService(mock, DefaultConfig()).Hint(context.Background(), Input{Challenge: salesRank(t)})
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected wrapped ErrRateLimit, got %v", err)
	}
}
