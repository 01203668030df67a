package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/activities"
	"github.com/abhisek/kidboard/internal/dashboard"
	"github.com/abhisek/kidboard/internal/ui/components"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

const titleCompact = "K · I · D · B · O · A · R · D"

// renderGreeting shows the mascot next to the learner's name and tier.
func renderGreeting(o dashboard.Overview, cw int, compact bool) string {
	hello := theme.Title.Render(fmt.Sprintf("Hi, %s!", o.Username))
	tier := lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(fmt.Sprintf("%s %s", o.Tier.Icon(), o.Tier))
	text := lipgloss.JoinVertical(lipgloss.Left, hello, tier)

	if compact {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(text)
	}
	block := lipgloss.JoinHorizontal(lipgloss.Center, RenderMascot(mascotFor(o)), "   ", text)
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(block)
}

// renderStatsBar renders points, level and trophies in a double border.
func renderStatsBar(o dashboard.Overview, cw int, compact bool) string {
	points := theme.Points.Render(fmt.Sprintf("★ %d", o.State.Points))
	level := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("LV %d", o.State.Level))
	trophies := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("🏆 %d/%d", o.Unlocked, o.Total))

	sep := "  "
	if !compact {
		points = theme.Points.Render(fmt.Sprintf("★ %d POINTS", o.State.Points))
		level = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("LEVEL %d", o.State.Level))
		sep = "   "
	}
	stats := strings.Join([]string{points, level, trophies}, sep)

	bar := components.NewProgressBar("", o.LevelProgress, false, cw-6)
	bar.Color = theme.Highlight
	next := theme.Hint.Render(fmt.Sprintf("%d points to level %d", o.PointsToNext, o.State.Level+1))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Center, stats, bar.View(), next))
}

// renderActivity renders one activity card with its progress bar.
func renderActivity(a activities.Activity, selected bool, cw int) string {
	accent := theme.Hex(a.Kind.Color())
	title := lipgloss.NewStyle().Foreground(accent).Bold(true).
		Render(a.Kind.Emoji() + " " + a.Title)
	if selected {
		title = theme.Selected.Render("▸ ") + title
	}
	bar := components.NewProgressBar("", float64(a.Progress)/100, true, cw-6)
	bar.Color = accent

	body := lipgloss.JoinVertical(lipgloss.Left, title, theme.Hint.Render(a.Description), bar.View())
	if selected {
		return components.AccentCard(body, cw, theme.Highlight)
	}
	return components.AccentCard(body, cw, accent)
}

// renderActivityLine is the one-line form used on small terminals.
func renderActivityLine(a activities.Activity, selected bool) string {
	line := fmt.Sprintf("%s %-14s %3d%%", a.Kind.Emoji(), a.Title, a.Progress)
	if selected {
		return theme.Selected.Render("▸ " + line)
	}
	return theme.Unselected.Render("  " + line)
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available", latestVersion))
}

// renderCabinetFrame wraps content in a double border centered in the
// given area.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
