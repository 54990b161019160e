package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/router"
	"github.com/abhisek/sqlchallenge/internal/store"
)

func newSession() *challenge.Session {
	return challenge.NewSession(challenge.SessionConfig{
		Selector: challenge.NewSelector(challenge.DefaultRegistry(), nil, challenge.NewRand(1)),
	})
}

func TestHomeMenuNavigation(t *testing.T) {
	h := New(newSession(), nil, nil)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on PRACTICE returned no command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Practice" {
		t.Fatalf("expected practice screen push, got %#v", cmd())
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok = cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Choose Challenge" {
		t.Fatalf("expected picker push, got %#v", cmd())
	}

	// HISTORY is disabled without an event store, so down lands on QUIT.
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.menu.Selected != 3 {
		t.Fatalf("selected = %d, want 3", h.menu.Selected)
	}
}

func TestHomeShowsHintsNoteAndScore(t *testing.T) {
	h := New(newSession(), nil, nil)
	view := h.View(120, 40)
	if !strings.Contains(view, "Hints are off") {
		t.Error("expected hints note when no provider is configured")
	}
	if !strings.Contains(view, "0/0 THIS RUN") {
		t.Error("expected session score")
	}
}

func TestHomeLoadsAllTimeStats(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	repo := st.EventRepo()
	for _, a := range []store.AttemptEventData{
		{Category: "rank", Outcome: "correct"},
		{Category: "lag", Outcome: "incorrect"},
		{Category: "lag", Outcome: "correct"},
	} {
		if err := repo.AppendAttempt(context.Background(), a); err != nil {
			t.Fatal(err)
		}
	}

	h := New(newSession(), nil, repo)
	h.Update(h.Init()())

	if h.stats.allAttempts != 3 || h.stats.allCorrect != 2 {
		t.Errorf("stats = %+v", h.stats)
	}
	if h.stats.weakest != "LAG()" {
		t.Errorf("weakest = %q, want LAG()", h.stats.weakest)
	}
	if !strings.Contains(h.View(120, 40), "2/3 ALL TIME") {
		t.Error("expected all-time totals in view")
	}
}
