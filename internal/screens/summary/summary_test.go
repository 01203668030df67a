package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidboard/internal/achievements"
	"github.com/abhisek/kidboard/internal/game"
	"github.com/abhisek/kidboard/internal/router"
	"github.com/abhisek/kidboard/internal/screen"
)

func testSummary() game.Summary {
	return game.Summary{
		SessionID:  "s1",
		Attempts:   8,
		Correct:    7,
		Score:      70,
		BestStreak: 5,
		Duration:   3*time.Minute + 5*time.Second,
	}
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "quiz" }
func (s *stubScreen) Title() string                           { return "Fun Math" }

func TestView(t *testing.T) {
	award := achievements.Award{Achievement: achievements.Catalog()[3]}
	view := New(testSummary(), []achievements.Award{award}, nil).View(100, 40)

	for _, want := range []string{"Amazing work!", "3:05", "Correct: 7", "88%", "Points earned: 70", "Best streak: 5", award.Achievement.Title} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHeadline(t *testing.T) {
	tests := []struct {
		attempts, correct int
		want              string
	}{
		{0, 0, "See you next time!"},
		{4, 4, "Perfect score!"},
		{10, 8, "Amazing work!"},
		{10, 5, "Nice job!"},
		{10, 2, "Every try"},
	}
	for _, tt := range tests {
		got := Headline(game.Summary{Attempts: tt.attempts, Correct: tt.correct})
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("Headline(%d/%d) = %q, want prefix %q", tt.correct, tt.attempts, got, tt.want)
		}
	}
}

func TestKeys(t *testing.T) {
	replayed := false
	s := New(testSummary(), nil, func() screen.Screen {
		replayed = true
		return &stubScreen{}
	})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("enter should pop back home")
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || !replayed || msg.Screen.Title() != "Fun Math" {
		t.Errorf("p should replace with a new quiz, got %#v", msg)
	}
}

func TestNoReplay(t *testing.T) {
	s := New(testSummary(), nil, nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"}); cmd != nil {
		t.Error("p without replay should do nothing")
	}
	if len(s.KeyHints()) != 1 {
		t.Errorf("hints = %v", s.KeyHints())
	}
}
