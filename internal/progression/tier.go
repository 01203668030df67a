package progression

// Tier is the named rank shown next to a level.
type Tier string

const (
	TierNovice    Tier = "Novice Explorer"
	TierAdventure Tier = "Adventurer"
	TierStar      Tier = "Super Star"
	TierGalactic  Tier = "Galactic Master"
	TierLegend    Tier = "Challenge Legend"
)

// TierFor returns the rank for a level. Levels below 1 are treated as 1.
func TierFor(level int) Tier {
	switch {
	case level >= 5:
		return TierLegend
	case level == 4:
		return TierGalactic
	case level == 3:
		return TierStar
	case level == 2:
		return TierAdventure
	default:
		return TierNovice
	}
}

// Icon returns the badge shown for the tier.
func (t Tier) Icon() string {
	switch t {
	case TierAdventure:
		return "🧭"
	case TierStar:
		return "⭐"
	case TierGalactic:
		return "🪐"
	case TierLegend:
		return "🏆"
	default:
		return "🌱"
	}
}
