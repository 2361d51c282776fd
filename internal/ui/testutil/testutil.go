// Package testutil provides common testing utilities for UI components.
package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"tab":    tea.KeyTab,
	"esc":    tea.KeyEsc,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"home":   tea.KeyHome,
	"end":    tea.KeyEnd,
	"delete": tea.KeyDelete,
	"ctrl+c": tea.KeyCtrlC,
}

// Key builds the KeyMsg bubbletea delivers for s, using the names that
// tea.KeyMsg.String returns. Anything else is typed as runes.
func Key(s string) tea.KeyMsg {
	if s == " " || s == "space" {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if t, ok := namedKeys[s]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// StripANSI removes ANSI escape codes from a string for easier testing.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Lines returns the plain-text lines of rendered output.
func Lines(output string) []string {
	return strings.Split(StripANSI(output), "\n")
}

// MeasureWidth returns the visual width of a string, accounting for
// wide characters and ANSI codes.
func MeasureWidth(s string) int {
	return ansi.StringWidth(s)
}

// ContainsLine checks if any line in the output contains the given substring.
func ContainsLine(output, substr string) bool {
	for _, line := range Lines(output) {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
