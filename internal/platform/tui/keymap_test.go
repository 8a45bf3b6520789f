package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapgate/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapGameKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFlap},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap},
		{"w", runeKey("w"), core.ActionFlap},
		{"k", runeKey("k"), core.ActionFlap},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"r", runeKey("r"), core.ActionRestart},
		{"b", runeKey("b"), core.ActionBack},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"q", runeKey("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{"p", runeKey("p"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapGameKey(tc.msg); got != tc.expected {
				t.Errorf("got %s, expected %s", got, tc.expected)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{"k", runeKey("k"), MenuActionUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{"j", runeKey("j"), MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{"q", runeKey("q"), MenuActionQuit},
		{"x", runeKey("x"), MenuActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
				t.Errorf("got %d, expected %d", got, tc.expected)
			}
		})
	}
}
