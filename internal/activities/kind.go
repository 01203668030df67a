package activities

// Kind is the subject area of an activity.
type Kind string

const (
	KindMath       Kind = "math"
	KindPortuguese Kind = "portuguese"
	KindScience    Kind = "science"
	KindArt        Kind = "art"
)

// AllKinds returns every kind in display order.
func AllKinds() []Kind {
	return []Kind{KindMath, KindPortuguese, KindScience, KindArt}
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindMath:
		return "Math"
	case KindPortuguese:
		return "Portuguese"
	case KindScience:
		return "Science"
	case KindArt:
		return "Art"
	default:
		return string(k)
	}
}

// Color returns the card accent color as a hex string.
func (k Kind) Color() string {
	switch k {
	case KindMath:
		return "#4A90D9"
	case KindPortuguese:
		return "#F5A623"
	case KindScience:
		return "#7ED321"
	case KindArt:
		return "#BD10E0"
	default:
		return "#9B9B9B"
	}
}

// Icon returns the icon name used by the card.
func (k Kind) Icon() string {
	switch k {
	case KindMath:
		return "calculator"
	case KindPortuguese:
		return "book"
	case KindScience:
		return "flask"
	case KindArt:
		return "palette"
	default:
		return "star"
	}
}

// Emoji returns the glyph shown in the terminal.
func (k Kind) Emoji() string {
	switch k {
	case KindMath:
		return "🧮"
	case KindPortuguese:
		return "📖"
	case KindScience:
		return "🔬"
	case KindArt:
		return "🎨"
	default:
		return "⭐"
	}
}
