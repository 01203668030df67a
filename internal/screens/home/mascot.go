package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/dashboard"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // on a hot streak
	MascotEager                     // close to the next level
)

// eagerPoints is how close to the next level the mascot gets excited.
const eagerPoints = 50

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ◡  │
│ ✎ ★ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ✎ ★ │
└─╥═╥─┘
  ╚═╝`

const mascotEager = `┌─────┐
│ ◉ ◉ │ !
│  ◡  │
│ ✎ ★ │
└─────┘`

// mascotFor picks the variant for the learner's current state.
func mascotFor(o dashboard.Overview) MascotVariant {
	switch {
	case o.BestStreak >= 5:
		return MascotCelebrating
	case o.PointsToNext <= eagerPoints:
		return MascotEager
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for v.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Highlight
	case MascotEager:
		art, fg = mascotEager, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
