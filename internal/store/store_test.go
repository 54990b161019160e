package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestOpenFileUsesWAL.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFileUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(ctx, s.drv)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"challenge_events", "attempt_events", "llm_request_events", "event_sequences"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := migrate(context.Background(), s.drv); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestTablesFollowEntSchemas(t *testing.T) {
	tables, err := Tables()
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	if len(tables) != 3 {
		t.Fatalf("got %d tables, want 3", len(tables))
	}

	byName := map[string][]string{}
	for _, tbl := range tables {
		if len(tbl.PrimaryKey) != 1 || tbl.PrimaryKey[0].Name != "id" {
			t.Errorf("%s: primary key = %v, want id", tbl.Name, tbl.PrimaryKey)
		}
		for _, c := range tbl.Columns {
			byName[tbl.Name] = append(byName[tbl.Name], c.Name)
		}
	}

	want := []string{"id", "sequence", "timestamp", "session_id", "challenge_id", "topic",
		"category", "query", "outcome", "error_message", "duration_ms"}
	got := byName["attempt_events"]
	if len(got) != len(want) {
		t.Fatalf("attempt_events columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attempt_events column %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAttemptDefaultsApplied(t *testing.T) {
	s := openTestStore(t)

	// Columns with ent defaults may be omitted on insert.
	_, err := s.DB().Exec(`INSERT INTO attempt_events
		(sequence, timestamp, session_id, challenge_id, topic, category, query, outcome)
		VALUES (99, '2026-01-02 03:04:05', 's', 'c', 'sales', 'lag', 'SELECT 1', 'incorrect')`)
	if err != nil {
		t.Fatalf("insert without defaults: %v", err)
	}

	var (
		msg string
		ms  int64
	)
	if err := s.DB().QueryRow(
		"SELECT error_message, duration_ms FROM attempt_events WHERE sequence = 99",
	).Scan(&msg, &ms); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if msg != "" || ms != 0 {
		t.Errorf("defaults = (%q, %d), want (\"\", 0)", msg, ms)
	}
}

func TestSequenceIsUnique(t *testing.T) {
	s := openTestStore(t)
	appendAttempt(t, s.EventRepo(), "rank", "correct")

	_, err := s.DB().Exec(`INSERT INTO attempt_events
		(sequence, timestamp, session_id, challenge_id, topic, category, query, outcome)
		VALUES (1, '2026-01-02 03:04:05', 's', 'c', 'sales', 'lag', 'SELECT 1', 'correct')`)
	if err == nil {
		t.Fatal("expected unique violation on duplicate sequence")
	}
}

func appendAttempt(t *testing.T, repo EventRepo, category, outcome string) {
	t.Helper()
	err := repo.AppendAttempt(context.Background(), AttemptEventData{
		SessionID:   "s1",
		ChallengeID: "c1",
		Topic:       "sales",
		Category:    category,
		Query:       "SELECT 1",
		Outcome:     outcome,
		DurationMs:  12,
	})
	if err != nil {
		t.Fatalf("append attempt: %v", err)
	}
}

func TestRecentAttemptsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendAttempt(t, repo, "rank", "incorrect")
	appendAttempt(t, repo, "rank", "correct")
	appendAttempt(t, repo, "lag", "unevaluable")

	events, err := repo.RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent attempts: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d attempts, want 3", len(events))
	}
	if events[0].Category != "lag" || events[2].Outcome != "incorrect" {
		t.Errorf("unexpected order: %+v", events)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Sequence >= events[i-1].Sequence {
			t.Errorf("sequence not descending at %d", i)
		}
	}
	if events[0].DurationMs != 12 || events[0].Query != "SELECT 1" {
		t.Errorf("fields not round-tripped: %+v", events[0])
	}
	if time.Since(events[0].Timestamp) > time.Minute {
		t.Errorf("timestamp too old: %v", events[0].Timestamp)
	}
}

func TestRecentAttemptsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		appendAttempt(t, repo, "rank", "correct")
	}

	limited, err := repo.RecentAttempts(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit: got %d, want 2", len(limited))
	}

	after, err := repo.RecentAttempts(ctx, QueryOpts{After: 3})
	if err != nil {
		t.Fatalf("after: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("after: got %d, want 2", len(after))
	}

	future, err := repo.RecentAttempts(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("from: got %d, want 0", len(future))
	}
}

func TestAttemptStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendAttempt(t, repo, "rank", "correct")
	appendAttempt(t, repo, "rank", "incorrect")
	appendAttempt(t, repo, "cumulative-sum", "correct")

	stats, err := repo.AttemptStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d categories, want 2", len(stats))
	}
	if stats[0].Category != "cumulative-sum" || stats[0].Total != 1 || stats[0].Correct != 1 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Category != "rank" || stats[1].Total != 2 || stats[1].Correct != 1 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
	if got := stats[1].Accuracy(); got != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", got)
	}
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendChallenge(ctx, ChallengeEventData{
		SessionID: "s1", ChallengeID: "c1", Topic: "sales", Category: "rank", Question: "q",
	}); err != nil {
		t.Fatalf("append challenge: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m", Purpose: "hint", Success: true,
	}); err != nil {
		t.Fatalf("append llm request: %v", err)
	}
	appendAttempt(t, repo, "rank", "correct")

	events, err := repo.RecentAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent attempts: %v", err)
	}
	if len(events) != 1 || events[0].Sequence != 3 {
		t.Errorf("attempt sequence = %+v, want 3", events)
	}

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM llm_request_events WHERE success = 1").Scan(&n); err != nil {
		t.Fatalf("count llm events: %v", err)
	}
	if n != 1 {
		t.Errorf("llm events = %d, want 1", n)
	}
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "h.db")
	t.Setenv("SQLCHALLENGE_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SQLCHALLENGE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "sqlchallenge", "history.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "hint", InputTokens: 100, OutputTokens: 10, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "hint", InputTokens: 50, OutputTokens: 5, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "hint", Success: false, ErrorMessage: "429"},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "hint", InputTokens: 7, OutputTokens: 3, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	usage, err := repo.LLMUsage(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("got %d rows, want 2", len(usage))
	}
	if usage[0].Provider != "anthropic" || usage[0].Requests != 1 || usage[0].InputTokens != 7 {
		t.Errorf("usage[0] = %+v", usage[0])
	}
	want := ModelUsage{Provider: "openai", Model: "gpt-4o-mini", Requests: 3, Failures: 1, InputTokens: 150, OutputTokens: 15}
	if usage[1] != want {
		t.Errorf("usage[1] = %+v, want %+v", usage[1], want)
	}
}
