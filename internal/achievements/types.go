package achievements

import "time"

// Icon names the badge artwork of an achievement.
type Icon string

const (
	IconTarget     Icon = "target"
	IconBook       Icon = "book"
	IconCalculator Icon = "calculator"
	IconFlask      Icon = "flask"
	IconRocket     Icon = "rocket"
	IconMedal      Icon = "medal"
	IconStar       Icon = "star"
)

// Glyph returns the terminal glyph for the icon.
func (i Icon) Glyph() string {
	switch i {
	case IconTarget:
		return "🎯"
	case IconBook:
		return "📚"
	case IconCalculator:
		return "🧮"
	case IconFlask:
		return "🧪"
	case IconRocket:
		return "🚀"
	case IconMedal:
		return "🏅"
	case IconStar:
		return "⭐"
	default:
		return "✦"
	}
}

// Rarity represents how hard an achievement is to unlock.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// Stats is what unlock rules are evaluated against.
type Stats struct {
	Points         int
	Level          int
	CorrectAnswers int
	BestStreak     int
	AvatarSaved    bool
}

// Rule reports whether stats satisfy an achievement.
type Rule func(Stats) bool

// Achievement is one entry of the catalog.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        Icon
	Rarity      Rarity
	Rule        Rule
}

// Award is an achievement unlocked at a point in time.
type Award struct {
	Achievement Achievement
	SessionID   string
	UnlockedAt  time.Time
}

// BoardEntry is a catalog entry with its unlock state, for display.
type BoardEntry struct {
	Achievement Achievement
	Unlocked    bool
}
