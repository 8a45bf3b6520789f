package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flapgate/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawTextColor(0, 0, "ab", core.ColorGold)
	s.DrawTextColor(2, 0, "cd", core.ColorSilver)
	s.DrawTextColor(0, 2, "xyz", core.Color(99)) // Unknown colours fall back to default

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 10 {
			t.Errorf("line %d: width %d, expected 10", i, w)
		}
	}
	if !strings.Contains(out, "xyz") {
		t.Errorf("unknown colour text missing from %q", out)
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text     string
		width    int
		expected string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"abcdef", 4, "abcdef"},
		{"", 4, "  "},
	}

	for _, tc := range tests {
		if got := centerText(tc.text, tc.width); got != tc.expected {
			t.Errorf("centerText(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.expected)
		}
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for _, c := range []core.Color{
		core.ColorDefault, core.ColorRed, core.ColorGreen, core.ColorYellow,
		core.ColorBlue, core.ColorCyan, core.ColorWhite, core.ColorBrightGreen,
		core.ColorBrightYellow, core.ColorBrightWhite, core.ColorOrange,
		core.ColorSilver, core.ColorGold, core.ColorGray,
	} {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for colour %d", c)
		}
	}
}
