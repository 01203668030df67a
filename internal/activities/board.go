// Package activities holds the learner's activity cards and their progress.
package activities

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownActivity is returned for an ID not on the board.
var ErrUnknownActivity = errors.New("unknown activity")

// Activity is one card on the board. Progress is a percentage in [0,100].
type Activity struct {
	ID          string
	Title       string
	Description string
	Kind        Kind
	Progress    int
}

// DefaultCatalog returns the four starting activities.
func DefaultCatalog() []Activity {
	return []Activity{
		{ID: "fun-math", Title: "Fun Math", Description: "Add numbers and win points", Kind: KindMath, Progress: 75},
		{ID: "reading", Title: "Reading Time", Description: "Read short stories", Kind: KindPortuguese, Progress: 100},
		{ID: "science-lab", Title: "Science Lab", Description: "Explore how things work", Kind: KindScience, Progress: 45},
		{ID: "art-studio", Title: "Art Studio", Description: "Draw and paint", Kind: KindArt, Progress: 30},
	}
}

// Board is the set of activities with their progress. It is safe for
// concurrent use.
type Board struct {
	mu         sync.RWMutex
	activities []Activity
}

// NewBoard creates a board over catalog, clamping every progress value.
func NewBoard(catalog []Activity) *Board {
	acts := make([]Activity, len(catalog))
	copy(acts, catalog)
	for i := range acts {
		acts[i].Progress = clamp(acts[i].Progress)
	}
	return &Board{activities: acts}
}

// Activities returns a copy of every activity in display order.
func (b *Board) Activities() []Activity {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Activity, len(b.activities))
	copy(out, b.activities)
	return out
}

// Get returns the activity with id.
func (b *Board) Get(id string) (Activity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, a := range b.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return Activity{}, fmt.Errorf("%w: %q", ErrUnknownActivity, id)
}

// SetProgress sets the progress of every activity of kind, clamped to
// [0,100].
func (b *Board) SetProgress(kind Kind, pct int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.activities {
		if b.activities[i].Kind == kind {
			b.activities[i].Progress = clamp(pct)
		}
	}
}

// Advance adds delta to the progress of every activity of kind.
func (b *Board) Advance(kind Kind, delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.activities {
		if b.activities[i].Kind == kind {
			b.activities[i].Progress = clamp(b.activities[i].Progress + delta)
		}
	}
}

// Progress returns the progress by kind, for snapshots.
func (b *Board) Progress() map[string]int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m := make(map[string]int, len(b.activities))
	for _, a := range b.activities {
		m[string(a.Kind)] = a.Progress
	}
	return m
}

// Overall returns the mean progress across all activities, 0 when empty.
func (b *Board) Overall() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.activities) == 0 {
		return 0
	}
	sum := 0
	for _, a := range b.activities {
		sum += a.Progress
	}
	return clamp(sum / len(b.activities))
}

// Start returns the notice shown when the learner opens an activity.
func (b *Board) Start(id string) (string, error) {
	a, err := b.Get(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s started! Have fun!", a.Kind.Emoji(), a.Title), nil
}

func clamp(pct int) int {
	return max(0, min(100, pct))
}
