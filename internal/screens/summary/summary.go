// Package summary shows the results of a finished quiz.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/achievements"
	"github.com/abhisek/kidboard/internal/game"
	"github.com/abhisek/kidboard/internal/router"
	"github.com/abhisek/kidboard/internal/screen"
	"github.com/abhisek/kidboard/internal/ui/components"
	"github.com/abhisek/kidboard/internal/ui/layout"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

// SummaryScreen displays a game summary.
type SummaryScreen struct {
	summary game.Summary
	awards  []achievements.Award
	replay  func() screen.Screen
}

var (
	_ screen.Screen          = (*SummaryScreen)(nil)
	_ screen.KeyHintProvider = (*SummaryScreen)(nil)
	_ screen.BackHandler     = (*SummaryScreen)(nil)
)

// New creates a SummaryScreen. replay builds the screen for "play again";
// nil hides the option.
func New(sum game.Summary, awards []achievements.Award, replay func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{summary: sum, awards: awards, replay: replay}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Great Job!" }

func (s *SummaryScreen) HandlesBack() bool { return true }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.replay != nil {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Play again"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Pop
		case "p":
			if s.replay != nil {
				return s, router.Replace(s.replay())
			}
		}
	}
	return s, nil
}

// Headline picks the cheer for the result.
func Headline(sum game.Summary) string {
	switch acc := sum.Accuracy(); {
	case sum.Attempts == 0:
		return "See you next time!"
	case acc == 1:
		return "Perfect score! 🌟"
	case acc >= 0.8:
		return "Amazing work! 🎉"
	case acc >= 0.5:
		return "Nice job! Keep practicing! 💪"
	default:
		return "Every try makes you stronger! 🌱"
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	var lines []string
	lines = append(lines, theme.Title.Render(Headline(sum)), "")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	lines = append(lines,
		theme.Subtitle.Render(fmt.Sprintf("Time played: %d:%02d", mins, secs)),
		"",
		theme.Body.Render(fmt.Sprintf("Questions: %d    Correct: %d    Accuracy: %.0f%%",
			sum.Attempts, sum.Correct, sum.Accuracy()*100)),
		theme.Points.Render(fmt.Sprintf("Points earned: %d    Best streak: %d", sum.Score, sum.BestStreak)),
	)

	if len(s.awards) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(cw-8, 10)))
		lines = append(lines, "", theme.Subtitle.Render("New achievements"), divider)
		for _, a := range s.awards {
			lines = append(lines, lipgloss.NewStyle().Foreground(RarityColor(a.Achievement.Rarity)).Render(
				fmt.Sprintf("%s %s (%s)", a.Achievement.Icon.Glyph(), a.Achievement.Title, a.Achievement.Rarity.DisplayName())))
		}
	}

	card := components.Card(lipgloss.JoinVertical(lipgloss.Center, lines...), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
