package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/ui/theme"
)

// ProgressBar is a horizontal bar for a fraction in [0, 1].
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Color       color.Color
}

// NewProgressBar creates a bar in the secondary color.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Color:       theme.Secondary,
	}
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6
	}
	barWidth := max(p.Width-lipgloss.Width(b.String())-percentWidth, 4)

	pct := min(max(p.Percent, 0), 1)
	filled := int(float64(barWidth) * pct)

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %3d%%", int(pct*100))))
	}
	return b.String()
}
