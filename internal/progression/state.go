package progression

// PointsPerLevel is the width of one level band.
const PointsPerLevel = 300

// State is a learner's score and the level derived from it.
type State struct {
	Points int `json:"points"`
	Level  int `json:"level"`
}

// DefaultState is the state every new process starts from.
var DefaultState = State{Points: 1250, Level: 5}

// LevelFor returns floor(points/300) + 1.
func LevelFor(points int) int {
	q := points / PointsPerLevel
	if points%PointsPerLevel != 0 && points < 0 {
		q--
	}
	return q + 1
}

// LevelProgress returns how far points are into their current level band,
// in the range [0, 1).
func LevelProgress(points int) float64 {
	floor := (LevelFor(points) - 1) * PointsPerLevel
	return float64(points-floor) / float64(PointsPerLevel)
}

// PointsToNextLevel returns the points still needed to reach the next band.
func PointsToNextLevel(points int) int {
	return LevelFor(points)*PointsPerLevel - points
}

// Change describes a single AddPoints mutation.
type Change struct {
	Amount int
	Before State
	After  State
}

// LevelledUp reports whether the mutation raised the stored level.
func (c Change) LevelledUp() bool {
	return c.After.Level > c.Before.Level
}
