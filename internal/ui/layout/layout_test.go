package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestScore(t *testing.T) {
	tests := []struct {
		attempts, correct int
		want              string
	}{
		{0, 0, "✓ 0 / 0"},
		{4, 3, "✓ 3 / 4  75%"},
		{3, 1, "✓ 1 / 3  33%"},
	}
	for _, tt := range tests {
		if got := Score(tt.attempts, tt.correct); got != tt.want {
			t.Errorf("Score(%d, %d) = %q, want %q", tt.attempts, tt.correct, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Practice", 4, 3, 100)
	for _, want := range []string{"sqlchallenge", "Practice", "75%"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFooterKeepsLastHint(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Run without grading"},
		{Key: "Ctrl+H", Description: "Ask for a hint"},
		{Key: "Ctrl+N", Description: "Next challenge"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	wide := RenderFooter(hints, 200)
	if !strings.Contains(wide, "Next challenge") {
		t.Error("wide footer dropped a hint")
	}

	narrow := RenderFooter(hints, 60)
	if !strings.Contains(narrow, "Submit") || !strings.Contains(narrow, "Quit") {
		t.Errorf("narrow footer must keep first and last hints:\n%s", narrow)
	}
	if strings.Contains(narrow, "Next challenge") {
		t.Errorf("narrow footer should have dropped middle hints:\n%s", narrow)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", 0, 0, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	out := RenderFrame(header, "body", footer, 80, 30)
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 40) || !IsTooSmall(120, 23) || IsTooSmall(80, 24) {
		t.Error("minimum size boundaries are wrong")
	}
	if !strings.Contains(RenderMinSizeMessage(60, 20), "60 x 20") {
		t.Error("message should show the current size")
	}
}
