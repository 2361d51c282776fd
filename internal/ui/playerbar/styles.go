package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tflash/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border)
}

func titleStyle() lipgloss.Style          { return styles.T().S().Title }
func topicStyle() lipgloss.Style          { return styles.T().S().Topic }
func metaStyle() lipgloss.Style           { return styles.T().S().Muted }
func timeStyle() lipgloss.Style           { return styles.T().S().Muted }
func errorStyle() lipgloss.Style          { return styles.T().S().Error }
func progressFilledStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(styles.T().Primary) }
func progressEmptyStyle() lipgloss.Style  { return styles.T().S().Subtle }
