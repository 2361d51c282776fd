// Package render provides text layout helpers for the dashboard panels.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Sanitize makes catalog and tag metadata safe to draw: invalid UTF-8 and
// control characters are dropped, and no-break spaces become spaces.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case r == '\t':
			return r
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

// needsSanitize is the fast path: most titles are plain text.
func needsSanitize(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		if r == '\u00a0' || (r != '\t' && unicode.IsControl(r)) {
			return true
		}
	}
	return false
}

// Truncate sanitizes s and shortens it to maxWidth cells, ending it with
// an ellipsis when something was cut. Wide characters count double.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, ellipsis)
}

// TruncateEllipsis is Truncate for already styled text: escape sequences
// are kept intact and nothing is sanitized.
func TruncateEllipsis(s string, maxWidth int) string {
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, ellipsis)
}

// Pad fills s with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad fits s to exactly width cells.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row puts left and right at the two ends of width cells, keeping at least
// one space between them.
func Row(left, right string, width int) string {
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := max(width-leftWidth-rightWidth, 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator is the rule drawn under panel titles.
func Separator(width int) string {
	return strings.Repeat("─", width)
}

// EmptyLine is a blank row of width cells.
func EmptyLine(width int) string {
	return strings.Repeat(" ", width)
}

// Clock formats d as m:ss, or h:mm:ss from one hour up. Negative durations
// render as 0:00.
func Clock(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Bar draws a width-cell gauge with ratio (clamped to [0,1]) of it filled.
func Bar(ratio float64, width int, fill, empty string) string {
	if width <= 0 {
		return ""
	}
	ratio = min(max(ratio, 0), 1)
	filled := min(int(float64(width)*ratio), width)
	return strings.Repeat(fill, filled) + strings.Repeat(empty, width-filled)
}

// Span describes a length of time the way people say it: "25 minutes",
// "1 hour". Precision drops as the span grows.
func Span(d time.Duration) string {
	var epoch time.Time
	return strings.TrimSpace(humanize.RelTime(epoch, epoch.Add(max(d, 0)), "", ""))
}
