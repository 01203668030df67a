package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/ui/theme"
)

// ContentWidth returns the width shared by stacked cards so they line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Card wraps content in a rounded border at width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 2).
		Render(content)
}

// AccentCard is a Card with a colored border.
func AccentCard(content string, cw int, accent color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw).
		Padding(0, 2).
		Render(content)
}

// OptionButton renders one answer button of the quiz.
func OptionButton(label string, selected bool, state OptionState, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch state {
	case OptionCorrect:
		style = style.Foreground(theme.BgDark).Background(theme.Success).BorderForeground(theme.Success).Bold(true)
	case OptionWrong:
		style = style.Foreground(theme.Text).Background(theme.Error).BorderForeground(theme.Error).Bold(true)
	case OptionDimmed:
		style = style.Foreground(theme.TextDim).BorderForeground(theme.Border)
	default:
		if selected {
			style = style.Foreground(theme.BgDark).Background(theme.Highlight).BorderForeground(theme.Highlight).Bold(true)
		} else {
			style = style.Foreground(theme.Text).BorderForeground(theme.Border)
		}
	}
	return style.Render(label)
}

// OptionState is how an answer button is shown after grading.
type OptionState int

const (
	OptionOpen OptionState = iota
	OptionCorrect
	OptionWrong
	OptionDimmed
)
