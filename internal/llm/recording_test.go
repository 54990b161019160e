package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/sqlchallenge/internal/store"
)

func TestRecordingProvider_StoresEachCall(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"ok"`), Usage: Usage{InputTokens: 100, OutputTokens: 20}},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithRecording(mock, ProviderMock, st.EventRepo())
	ctx := WithPurpose(context.Background(), "hint")

	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error from second call")
	}

	rows, err := st.DB().Query(
		"SELECT purpose, model, input_tokens, output_tokens, success, error_message FROM llm_request_events ORDER BY sequence")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	type rec struct {
		purpose, model string
		in, out        int
		success        bool
		errMsg         string
	}
	var got []rec
	for rows.Next() {
		var r rec
		if err := rows.Scan(&r.purpose, &r.model, &r.in, &r.out, &r.success, &r.errMsg); err != nil {
			t.Fatal(err)
		}
		got = append(got, r)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].purpose != "hint" || got[0].model != "mock" || got[0].in != 100 || got[0].out != 20 || !got[0].success {
		t.Errorf("first event = %+v", got[0])
	}
	if got[1].success || got[1].errMsg != "boom" {
		t.Errorf("second event = %+v", got[1])
	}
	if p.ModelID() != "mock" {
		t.Errorf("model id = %q", p.ModelID())
	}
}
