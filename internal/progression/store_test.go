package progression

import (
	"sync"
	"testing"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{1, 1},
		{299, 1},
		{300, 2},
		{599, 2},
		{600, 3},
		{1250, 5},
		{1260, 5},
		{1500, 6},
		{-1, 0},
		{-300, 0},
		{-301, -1},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.points); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestAddPoints_KeepsLevelWithinBand(t *testing.T) {
	s := New(State{Points: 1250, Level: 5})
	c := s.AddPoints(10)

	got := s.State()
	if got.Points != 1260 {
		t.Errorf("points = %d, want 1260", got.Points)
	}
	if got.Level != 5 {
		t.Errorf("level = %d, want 5", got.Level)
	}
	if c.LevelledUp() {
		t.Error("expected no level-up")
	}
}

func TestAddPoints_CrossesBand(t *testing.T) {
	s := New(State{Points: 0, Level: 1})
	c := s.AddPoints(300)

	got := s.State()
	if got.Points != 300 || got.Level != 2 {
		t.Errorf("state = %+v, want {300 2}", got)
	}
	if !c.LevelledUp() {
		t.Error("expected level-up")
	}
	if c.Before.Level != 1 || c.After.Level != 2 {
		t.Errorf("change = %+v", c)
	}
}

func TestAddPoints_SumOfDeltas(t *testing.T) {
	s := NewDefault()
	deltas := []int{0, 10, 10, 290, 7, 1000, 3}
	want := DefaultState.Points
	for _, d := range deltas {
		s.AddPoints(d)
		want += d

		st := s.State()
		if st.Points != want {
			t.Fatalf("points = %d, want %d", st.Points, want)
		}
		if st.Level != LevelFor(st.Points) {
			t.Fatalf("level = %d, want %d", st.Level, LevelFor(st.Points))
		}
	}
}

func TestAddPoints_NeverLowersLevel(t *testing.T) {
	s := New(State{Points: 310, Level: 2})
	s.AddPoints(-100)

	got := s.State()
	if got.Points != 210 {
		t.Errorf("points = %d, want 210", got.Points)
	}
	if got.Level != 2 {
		t.Errorf("level = %d, want 2 (never lowered)", got.Level)
	}

	// Climbing back does not double count.
	s.AddPoints(100)
	if got := s.State(); got.Level != 2 {
		t.Errorf("level = %d, want 2", got.Level)
	}
}

func TestAddPoints_LevelMonotonic(t *testing.T) {
	s := New(State{Points: 0, Level: 1})
	prev := s.State().Level
	for i := 0; i < 200; i++ {
		s.AddPoints(17)
		lvl := s.State().Level
		if lvl < prev {
			t.Fatalf("level dropped from %d to %d", prev, lvl)
		}
		prev = lvl
	}
}

func TestOnChange_NotifiesInOrder(t *testing.T) {
	s := New(State{Points: 290, Level: 1})
	var calls []string
	s.OnChange(func(c Change) {
		calls = append(calls, "first")
		if c.Amount != 10 || !c.LevelledUp() {
			t.Errorf("unexpected change %+v", c)
		}
	})
	s.OnChange(func(Change) { calls = append(calls, "second") })

	s.AddPoints(10)

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v", calls)
	}
}

func TestOnChange_ListenerMayReadState(t *testing.T) {
	s := NewDefault()
	var seen State
	s.OnChange(func(Change) { seen = s.State() })
	s.AddPoints(50)
	if seen.Points != 1300 {
		t.Errorf("listener saw %+v", seen)
	}
}

func TestRestore(t *testing.T) {
	s := NewDefault()
	s.Restore(State{Points: 900, Level: 2})
	if got := s.State(); got.Level != 4 {
		t.Errorf("level = %d, want 4 (recomputed)", got.Level)
	}

	s.Restore(State{Points: 10, Level: 7})
	if got := s.State(); got.Level != 7 {
		t.Errorf("level = %d, want 7 (kept)", got.Level)
	}
}

func TestAddPoints_Concurrent(t *testing.T) {
	s := New(State{Points: 0, Level: 1})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddPoints(10)
		}()
	}
	wg.Wait()

	if got := s.State(); got.Points != 500 || got.Level != 2 {
		t.Errorf("state = %+v, want {500 2}", got)
	}
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		points int
		want   float64
	}{
		{0, 0},
		{150, 0.5},
		{300, 0},
		{1250, 50.0 / 300.0},
	}
	for _, tt := range tests {
		if got := LevelProgress(tt.points); got != tt.want {
			t.Errorf("LevelProgress(%d) = %v, want %v", tt.points, got, tt.want)
		}
	}

	if got := PointsToNextLevel(1250); got != 250 {
		t.Errorf("PointsToNextLevel(1250) = %d, want 250", got)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		level int
		want  Tier
	}{
		{0, TierNovice},
		{1, TierNovice},
		{2, TierAdventure},
		{3, TierStar},
		{4, TierGalactic},
		{5, TierLegend},
		{42, TierLegend},
	}
	for _, tt := range tests {
		if got := TierFor(tt.level); got != tt.want {
			t.Errorf("TierFor(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
