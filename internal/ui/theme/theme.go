// Package theme holds the colors and styles shared by every screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is the set of colors a screen draws with.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Highlight color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

// Dark is bright and friendly on a dark background.
var Dark = Palette{
	Primary:   lipgloss.Color("#6C63FF"), // Indigo
	Secondary: lipgloss.Color("#2EC4B6"), // Teal
	Accent:    lipgloss.Color("#FF9F1C"), // Orange
	Highlight: lipgloss.Color("#FFD166"), // Sunny yellow
	Success:   lipgloss.Color("#22C55E"),
	Error:     lipgloss.Color("#EF476F"),
	Text:      lipgloss.Color("#F8FAFC"),
	TextDim:   lipgloss.Color("#94A3B8"),
	BgDark:    lipgloss.Color("#111827"),
	BgCard:    lipgloss.Color("#1F2937"),
	Border:    lipgloss.Color("#374151"),
}

// Light keeps the same hues, darkened for a light background.
var Light = Palette{
	Primary:   lipgloss.Color("#4338CA"),
	Secondary: lipgloss.Color("#0F766E"),
	Accent:    lipgloss.Color("#C2410C"),
	Highlight: lipgloss.Color("#A16207"),
	Success:   lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#BE123C"),
	Text:      lipgloss.Color("#0F172A"),
	TextDim:   lipgloss.Color("#475569"),
	BgDark:    lipgloss.Color("#F8FAFC"),
	BgCard:    lipgloss.Color("#E2E8F0"),
	Border:    lipgloss.Color("#94A3B8"),
}

// HighContrast returns p with dim text and borders raised to full
// strength and pure black or white for text.
func HighContrast(p Palette, dark bool) Palette {
	fg, bg := lipgloss.Color("#FFFFFF"), lipgloss.Color("#000000")
	if !dark {
		fg, bg = bg, fg
	}
	p.Text = fg
	p.TextDim = fg
	p.Border = fg
	p.BgDark = bg
	p.BgCard = bg
	return p
}

// Mode picks the palette from the learner's settings.
type Mode struct {
	Dark         bool
	HighContrast bool
}

// PaletteFor returns the palette for m.
func PaletteFor(m Mode) Palette {
	p := Light
	if m.Dark {
		p = Dark
	}
	if m.HighContrast {
		p = HighContrast(p, m.Dark)
	}
	return p
}

// Active colors. Screens read them at render time.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Highlight color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
)

var (
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Body       lipgloss.Style
	Hint       lipgloss.Style
	Points     lipgloss.Style
	Card       lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
	Locked     lipgloss.Style
)

func init() {
	Use(Dark)
}

// Apply switches to the palette for m. Call it before the program starts.
func Apply(m Mode) {
	Use(PaletteFor(m))
}

// Use makes p the active palette and rebuilds the shared styles.
func Use(p Palette) {
	Primary, Secondary, Accent, Highlight = p.Primary, p.Secondary, p.Accent, p.Highlight
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgDark, BgCard, Border = p.BgDark, p.BgCard, p.Border

	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Points = lipgloss.NewStyle().Foreground(Highlight).Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Locked = lipgloss.NewStyle().Foreground(Border)
}

// Hex converts a "#rrggbb" string, as used by the domain packages, to a
// color.
func Hex(s string) color.Color {
	return lipgloss.Color(s)
}
