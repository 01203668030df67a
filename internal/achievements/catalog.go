package achievements

// Catalog returns every achievement in display order.
func Catalog() []Achievement {
	return []Achievement{
		{
			ID:          "first-steps",
			Title:       "First Steps",
			Description: "Answer your first question correctly",
			Icon:        IconTarget,
			Rarity:      RarityCommon,
			Rule:        correctAtLeast(1),
		},
		{
			ID:          "math-whiz",
			Title:       "Math Whiz",
			Description: "Answer 10 questions correctly",
			Icon:        IconCalculator,
			Rarity:      RarityCommon,
			Rule:        correctAtLeast(10),
		},
		{
			ID:          "junior-mathematician",
			Title:       "Junior Mathematician",
			Description: "Answer 50 questions correctly",
			Icon:        IconBook,
			Rarity:      RarityRare,
			Rule:        correctAtLeast(50),
		},
		{
			ID:          "hot-streak",
			Title:       "Hot Streak",
			Description: "Get 5 answers right in a row",
			Icon:        IconFlask,
			Rarity:      RarityRare,
			Rule:        func(s Stats) bool { return s.BestStreak >= 5 },
		},
		{
			ID:          "rising-star",
			Title:       "Rising Star",
			Description: "Reach level 5",
			Icon:        IconStar,
			Rarity:      RarityEpic,
			Rule:        func(s Stats) bool { return s.Level >= 5 },
		},
		{
			ID:          "galactic",
			Title:       "Galactic Explorer",
			Description: "Reach level 10",
			Icon:        IconRocket,
			Rarity:      RarityLegendary,
			Rule:        func(s Stats) bool { return s.Level >= 10 },
		},
		{
			ID:          "thousand-club",
			Title:       "Thousand Club",
			Description: "Collect 1000 points",
			Icon:        IconMedal,
			Rarity:      RarityEpic,
			Rule:        func(s Stats) bool { return s.Points >= 1000 },
		},
		{
			ID:          "avatar-artist",
			Title:       "Avatar Artist",
			Description: "Design and save your own avatar",
			Icon:        IconStar,
			Rarity:      RarityCommon,
			Rule:        func(s Stats) bool { return s.AvatarSaved },
		},
	}
}

func correctAtLeast(n int) Rule {
	return func(s Stats) bool { return s.CorrectAnswers >= n }
}

// Lookup returns the catalog entry with id.
func Lookup(id string) (Achievement, bool) {
	for _, a := range Catalog() {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
