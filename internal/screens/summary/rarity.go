package summary

import (
	"image/color"

	"github.com/abhisek/kidboard/internal/achievements"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

// RarityColor returns the theme color for an achievement rarity.
func RarityColor(r achievements.Rarity) color.Color {
	switch r {
	case achievements.RarityRare:
		return theme.Secondary
	case achievements.RarityEpic:
		return theme.Primary
	case achievements.RarityLegendary:
		return theme.Accent
	default:
		return theme.Text
	}
}
