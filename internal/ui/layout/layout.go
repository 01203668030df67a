// Package layout renders the frame around every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	CompactWidthThreshold  = 90
	CompactHeightThreshold = 28
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderInfo is the learner summary shown on the right of the header.
type HeaderInfo struct {
	Name   string
	Points int
	Level  int
}

// IsCompact reports whether the terminal is too small for decorations.
func IsCompact(width, height int) bool {
	return width < CompactWidthThreshold || height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the app name, the screen title and the learner's
// points and level.
func RenderHeader(title string, info HeaderInfo, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("🌈 kidboard")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	right := lipgloss.NewStyle().Foreground(theme.Text).Render(info.Name) +
		"   " +
		theme.Points.Render(fmt.Sprintf("★ %d", info.Points)) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fmt.Sprintf("Lv %d", info.Level))

	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFooter renders key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer into exactly height rows.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Centered places each line of content in the middle of width.
func Centered(content string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
