package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-dash/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "Score:", core.ColorWhite)
	s.DrawTextColored(7, 0, "42", core.ColorGold)
	s.DrawHLine(0, 1, 12, '▀', core.ColorGray)

	out := ansi.Strip(RenderScreen(s))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "Score: 42   " {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != strings.Repeat("▀", 12) {
		t.Errorf("line 1 = %q", lines[1])
	}
}
