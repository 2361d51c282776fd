package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tflash/internal/briefing"
)

// Theme is the dashboard palette. Brand colors follow the tflash web
// dashboard: indigo for what is playing, amber for topics.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color // new briefings
	Error   lipgloss.Color
	Warning lipgloss.Color // scheduled briefings

	once   sync.Once
	styles *Styles
}

// Styles are the lipgloss styles built from a Theme.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style // the current briefing
	Topic   lipgloss.Style
	Cursor  lipgloss.Style // selected row in the focused panel
	Key     lipgloss.Style // key names in the help line
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#818cf8"),
	Secondary: lipgloss.Color("#f59e0b"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#818cf8"),

	Success: lipgloss.Color("#34d399"),
	Error:   lipgloss.Color("#f87171"),
	Warning: lipgloss.Color("#f59e0b"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles for this theme, building them on first use.
func (t *Theme) S() *Styles {
	t.once.Do(func() { t.styles = t.build() })
	return t.styles
}

// Status returns the style for a briefing's listening status.
func (t *Theme) Status(s briefing.Status) lipgloss.Style {
	switch s {
	case briefing.StatusNew:
		return t.S().Success
	case briefing.StatusScheduled:
		return t.S().Warning
	default:
		return t.S().Subtle
	}
}

func (t *Theme) build() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return &Styles{
		Base:    base,
		Muted:   fg(t.FgMuted),
		Subtle:  fg(t.FgSubtle),
		Title:   base.Bold(true),
		Playing: fg(t.Primary).Bold(true),
		Topic:   fg(t.Secondary),
		Cursor:  base.Background(t.BgCursor),
		Key:     fg(t.Primary).Bold(true),
		Success: fg(t.Success),
		Error:   fg(t.Error),
		Warning: fg(t.Warning),
	}
}
