package dashboard

import (
	"github.com/abhisek/kidboard/internal/achievements"
	"github.com/abhisek/kidboard/internal/activities"
	"github.com/abhisek/kidboard/internal/progression"
)

// Overview is everything the home screen and the stats command show.
type Overview struct {
	Username      string
	Avatar        string
	State         progression.State
	Tier          progression.Tier
	LevelProgress float64
	PointsToNext  int

	Activities      []activities.Activity
	OverallProgress int

	Achievements []achievements.BoardEntry
	Unlocked     int
	Total        int

	Attempts   int
	Correct    int
	BestStreak int
}

// Accuracy returns the fraction of correct answers, 0 with none.
func (o Overview) Accuracy() float64 {
	if o.Attempts == 0 {
		return 0
	}
	return float64(o.Correct) / float64(o.Attempts)
}

// Overview builds the current read model.
func (d *Dashboard) Overview() Overview {
	st := d.Progress.State()
	unlocked, total := d.Achievements.Count()

	o := Overview{
		State:           st,
		Tier:            progression.TierFor(st.Level),
		LevelProgress:   progression.LevelProgress(st.Points),
		PointsToNext:    progression.PointsToNextLevel(st.Points),
		Activities:      d.Activities.Activities(),
		OverallProgress: d.Activities.Overall(),
		Achievements:    d.Achievements.Board(),
		Unlocked:        unlocked,
		Total:           total,
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	o.Username = d.profile.Username
	o.Avatar = d.profile.Avatar
	o.Attempts = d.attempts
	o.Correct = d.correct
	o.BestStreak = d.bestStreak
	return o
}
