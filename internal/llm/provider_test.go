package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func hintSchema() *Schema {
	return &Schema{
		Name:        "test-hint",
		Description: "A nudge toward the answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"hint":    map[string]any{"type": "string", "minLength": 1},
				"concept": map[string]any{"type": "string", "enum": []any{"partition", "ordering", "frame"}},
				"level":   map[string]any{"type": "integer", "minimum": 1},
			},
			"required":             []any{"hint", "concept"},
			"additionalProperties": false,
		},
	}
}

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"first"`)},
		MockResponse{Content: json.RawMessage(`"second"`), Usage: Usage{InputTokens: 3}},
	)

	if mock.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", mock.Pending())
	}
	for _, want := range []string{`"first"`, `"second"`} {
		resp, err := mock.Generate(context.Background(), Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(resp.Content) != want {
			t.Fatalf("content = %s, want %s", resp.Content, want)
		}
		if resp.Model != "mock" {
			t.Fatalf("model = %q", resp.Model)
		}
	}

	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable on empty queue, got %v", err)
	}
	if mock.CallCount() != 3 || mock.Pending() != 0 {
		t.Fatalf("call count = %d, pending = %d", mock.CallCount(), mock.Pending())
	}
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	req := Request{
		System:   "tutor",
		Messages: []Message{{Role: RoleUser, Content: "why is my RANK wrong?"}},
	}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if got := mock.Calls[0].Messages[0].Content; got != "why is my RANK wrong?" {
		t.Fatalf("recorded message = %q", got)
	}
}

func TestMockProvider_ConfiguredError(t *testing.T) {
	boom := errors.New("boom")
	mock := NewMockProvider(MockResponse{Err: boom})
	if _, err := mock.Generate(context.Background(), Request{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(
		MockJSON(map[string]any{"hint": "Partition by category", "concept": "partition"}),
		MockJSON(map[string]any{"hint": "x", "concept": "grouping"}),
		MockResponse{Content: json.RawMessage(`{"hint":"cut`), StopReason: "max_tokens"},
	)
	req := Request{Schema: hintSchema()}

	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("valid response rejected: %v", err)
	}

	_, err := mock.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}

	_, err = mock.Generate(context.Background(), req)
	var trunc *ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("default purpose = %q", got)
	}
	ctx := WithPurpose(context.Background(), "hint")
	if got := PurposeFrom(ctx); got != "hint" {
		t.Fatalf("purpose = %q, want hint", got)
	}
}

func TestClassifyStatus(t *testing.T) {
	base := errors.New("http")

	var rl *ErrRateLimit
	h := http.Header{}
	h.Set("Retry-After", "7")
	if !errors.As(classifyStatus(429, h, base), &rl) || rl.RetryAfter != 7*time.Second {
		t.Fatalf("429 should be a rate limit honouring Retry-After, got %+v", rl)
	}
	var unavail *ErrProviderUnavailable
	for _, status := range []int{408, 500, 503} {
		if !errors.As(classifyStatus(status, nil, base), &unavail) {
			t.Fatalf("%d should be unavailable", status)
		}
	}
	var rejected *ErrRejected
	for _, status := range []int{400, 401, 403, 404} {
		if !errors.As(classifyStatus(status, nil, base), &rejected) || rejected.Status != status {
			t.Fatalf("%d should be rejected", status)
		}
	}
	if !errors.Is(classifyStatus(400, nil, base), base) {
		t.Fatal("classified errors must wrap the cause")
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	header := func(v string) http.Header {
		h := http.Header{}
		h.Set("Retry-After", v)
		return h
	}

	if got := retryAfter(header("3"), now); got != 3*time.Second {
		t.Errorf("seconds: %v", got)
	}
	if got := retryAfter(header(now.Add(90*time.Second).Format(http.TimeFormat)), now); got != 90*time.Second {
		t.Errorf("http date: %v", got)
	}
	for _, v := range []string{"", "soon", "-4", now.Add(-time.Minute).Format(http.TimeFormat)} {
		if got := retryAfter(header(v), now); got != 0 {
			t.Errorf("%q: %v, want 0", v, got)
		}
	}
	if got := retryAfter(nil, now); got != 0 {
		t.Errorf("nil header: %v", got)
	}
}

func TestEstimateCost(t *testing.T) {
	cost, ok := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	if !ok {
		t.Fatal("expected gpt-4o-mini to be priced")
	}
	if cost < 0.749 || cost > 0.751 {
		t.Fatalf("cost = %v, want 0.75", cost)
	}
	if _, ok := EstimateCost("mock", 10, 10); ok {
		t.Fatal("mock should not be priced")
	}
}
