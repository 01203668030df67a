// Package quiz is the Fun Math screen.
package quiz

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kidboard/internal/achievements"
	"github.com/abhisek/kidboard/internal/coach"
	"github.com/abhisek/kidboard/internal/game"
	"github.com/abhisek/kidboard/internal/router"
	"github.com/abhisek/kidboard/internal/screen"
	"github.com/abhisek/kidboard/internal/screens"
	"github.com/abhisek/kidboard/internal/screens/summary"
	"github.com/abhisek/kidboard/internal/ui/components"
	"github.com/abhisek/kidboard/internal/ui/layout"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

const explainPollInterval = 100 * time.Millisecond

// advanceMsg moves to the next question if round still matches.
type advanceMsg struct{ round int }

type explainPollMsg struct{ round int }

type checkpointMsg struct{ err error }

// QuizScreen runs one game until the learner leaves.
type QuizScreen struct {
	env      *screens.Env
	game     *game.Game
	round    int
	selected int

	explanation *coach.Explanation
	asked       coach.Input
	waiting     bool
	awards      []achievements.Award
	sessionWins []achievements.Award
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.BackHandler     = (*QuizScreen)(nil)
)

// New starts a new game.
func New(env *screens.Env) *QuizScreen {
	d := env.Dashboard
	return &QuizScreen{
		env:  env,
		game: game.New(env.Questions(), d, game.WithRecorder(d)),
	}
}

func (s *QuizScreen) Init() tea.Cmd { return nil }

func (s *QuizScreen) Title() string { return "Fun Math" }

func (s *QuizScreen) HandlesBack() bool { return true }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.game.Answered() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Esc", Description: "Finish"},
		}
	}
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Choose"},
		{Key: "1-4", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Finish"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		if msg.round == s.round && s.game.Answered() {
			s.next()
		}
		return s, nil

	case explainPollMsg:
		if msg.round != s.round || !s.waiting {
			return s, nil
		}
		exp, ready, err := s.env.Coach.Consume()
		if !ready {
			return s, s.pollExplanation()
		}
		if err != nil {
			s.env.Log().Warn("explain", zap.Error(err))
			exp, _ = coach.Local{}.Explain(context.Background(), s.asked)
		}
		s.explanation = exp
		s.waiting = false
		return s, nil

	case checkpointMsg:
		if msg.err != nil {
			s.env.Log().Warn("checkpoint", zap.Error(msg.err))
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *QuizScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if key == "esc" || key == "q" {
		return s, s.finish()
	}

	if s.game.Answered() {
		if key == "enter" || key == "space" || key == "n" {
			s.next()
		}
		return s, nil
	}

	switch key {
	case "left", "h":
		if s.selected%2 == 1 {
			s.selected--
		}
	case "right", "l":
		if s.selected%2 == 0 && s.selected+1 < len(s.game.Question().Options) {
			s.selected++
		}
	case "up", "k":
		if s.selected >= 2 {
			s.selected -= 2
		}
	case "down", "j":
		if s.selected+2 < len(s.game.Question().Options) {
			s.selected += 2
		}
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(s.game.Question().Options) {
			s.selected = idx
			return s, s.submit()
		}
	case "enter", "space":
		return s, s.submit()
	}
	return s, nil
}

func (s *QuizScreen) submit() tea.Cmd {
	q := s.game.Question()
	submitted := q.Options[s.selected]

	res, err := s.game.Answer(context.Background(), submitted)
	if err != nil {
		s.env.Log().Warn("answer", zap.Error(err))
	}

	s.awards = s.env.Dashboard.DrainAwards()
	s.sessionWins = append(s.sessionWins, s.awards...)

	cmds := []tea.Cmd{s.checkpoint()}
	if res.Correct {
		round := s.round
		cmds = append(cmds, tea.Tick(game.AutoAdvanceDelay, func(time.Time) tea.Msg {
			return advanceMsg{round: round}
		}))
	} else if s.env.Coach != nil {
		s.asked = coach.Input{
			SessionID: s.game.SessionID(),
			A:         q.A,
			B:         q.B,
			Answer:    q.Answer,
			Submitted: submitted,
		}
		s.env.Coach.Request(s.asked)
		s.waiting = true
		cmds = append(cmds, s.pollExplanation())
	}
	return tea.Batch(cmds...)
}

func (s *QuizScreen) next() {
	s.game.Next()
	s.round++
	s.selected = 0
	s.explanation = nil
	s.awards = nil
	if s.waiting {
		s.env.Coach.Discard()
		s.waiting = false
	}
}

func (s *QuizScreen) pollExplanation() tea.Cmd {
	round := s.round
	return tea.Tick(explainPollInterval, func(time.Time) tea.Msg {
		return explainPollMsg{round: round}
	})
}

func (s *QuizScreen) checkpoint() tea.Cmd {
	d := s.env.Dashboard
	return func() tea.Msg {
		return checkpointMsg{err: d.Checkpoint(context.Background())}
	}
}

func (s *QuizScreen) finish() tea.Cmd {
	if s.waiting {
		s.env.Coach.Discard()
		s.waiting = false
	}
	sum := s.game.Summary()
	env := s.env
	replay := func() screen.Screen { return New(env) }
	return router.Replace(summary.New(sum, s.sessionWins, replay))
}

func (s *QuizScreen) View(width, height int) string {
	q := s.game.Question()
	res := s.game.Result()
	cw := components.ContentWidth(width)

	var sections []string

	score := fmt.Sprintf("Score %d   Streak %d", s.game.Score(), s.game.Streak())
	sections = append(sections, theme.Points.Render(score))

	sections = append(sections, lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Text).
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 6).
		Render(q.Prompt()))

	sections = append(sections, s.renderOptions(cw))

	if res != nil {
		sections = append(sections, s.renderFeedback(cw))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *QuizScreen) renderOptions(cw int) string {
	q := s.game.Question()
	res := s.game.Result()
	btnWidth := cw/2 - 2

	buttons := make([]string, len(q.Options))
	for i, opt := range q.Options {
		state := components.OptionOpen
		if res != nil {
			switch {
			case opt == res.CorrectAnswer:
				state = components.OptionCorrect
			case i == s.selected:
				state = components.OptionWrong
			default:
				state = components.OptionDimmed
			}
		}
		label := fmt.Sprintf("%d)  %d", i+1, opt)
		buttons[i] = components.OptionButton(label, i == s.selected, state, btnWidth)
	}

	var rows []string
	for i := 0; i < len(buttons); i += 2 {
		row := []string{buttons[i]}
		if i+1 < len(buttons) {
			row = append(row, "  ", buttons[i+1])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (s *QuizScreen) renderFeedback(cw int) string {
	res := s.game.Result()
	var lines []string

	if res.Correct {
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("🎉 Correct! +%d points", game.PointsPerCorrect)))
	} else {
		lines = append(lines, theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is %d.", res.CorrectAnswer)))
		switch {
		case s.explanation != nil:
			lines = append(lines, "",
				theme.Body.Width(cw).Render(s.explanation.Text),
				theme.Hint.Width(cw).Render("Tip: "+s.explanation.Tip),
				lipgloss.NewStyle().Foreground(theme.Secondary).Render(s.explanation.Cheer))
		case s.waiting:
			lines = append(lines, theme.Hint.Render("Thinking of a hint..."))
		}
	}

	for _, a := range s.awards {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(
			fmt.Sprintf("%s Achievement unlocked: %s", a.Achievement.Icon.Glyph(), a.Achievement.Title)))
	}
	return components.Card(lipgloss.JoinVertical(lipgloss.Center, lines...), cw)
}
