package activities

import "sort"

// Difficulty rates how hard a mission is.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
)

// Mission is an upcoming challenge tied to one kind of activity.
type Mission struct {
	ID          string
	Title       string
	Description string
	Kind        Kind
	Points      int
	Difficulty  Difficulty
}

// DefaultMissions returns the missions offered after the starting board.
func DefaultMissions() []Mission {
	return []Mission{
		{ID: "space-mission", Title: "Space Mission", Description: "Explore the planets", Kind: KindScience, Points: 30, Difficulty: DifficultyEasy},
		{ID: "fun-math", Title: "Fun Math", Description: "Solve sums against the clock", Kind: KindMath, Points: 25, Difficulty: DifficultyModerate},
		{ID: "fable-stories", Title: "Fable Stories", Description: "Read classic fables", Kind: KindPortuguese, Points: 40, Difficulty: DifficultyEasy},
	}
}

// NextMissions returns the missions whose activities are not finished yet,
// least progressed first. Missions for a kind with no activity on the board
// are kept at the end in catalog order.
func (b *Board) NextMissions(missions []Mission) []Mission {
	b.mu.RLock()
	lowest := make(map[Kind]int)
	for _, a := range b.activities {
		if p, ok := lowest[a.Kind]; !ok || a.Progress < p {
			lowest[a.Kind] = a.Progress
		}
	}
	b.mu.RUnlock()

	rank := func(m Mission) int {
		if p, ok := lowest[m.Kind]; ok {
			return p
		}
		return 100
	}

	var out []Mission
	for _, m := range missions {
		if p, ok := lowest[m.Kind]; ok && p >= 100 {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}
