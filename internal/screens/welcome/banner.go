package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗██╗██████╗ ██████╗  ██████╗  █████╗ ██████╗ ██████╗
 ██║ ██╔╝██║██╔══██╗██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗
 █████╔╝ ██║██║  ██║██████╔╝██║   ██║███████║██████╔╝██║  ██║
 ██╔═██╗ ██║██║  ██║██╔══██╗██║   ██║██╔══██║██╔══██╗██║  ██║
 ██║  ██╗██║██████╔╝██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
 ╚═╝  ╚═╝╚═╝╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "K I D B O A R D"

// bannerMinWidth is the narrowest terminal that fits the block letters.
const bannerMinWidth = 64

// RenderBanner returns the KIDBOARD banner in the primary color, or the
// spaced-out fallback on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
