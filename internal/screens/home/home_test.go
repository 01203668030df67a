package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kidboard/internal/dashboard"
	"github.com/abhisek/kidboard/internal/game"
	"github.com/abhisek/kidboard/internal/quiz"
	"github.com/abhisek/kidboard/internal/router"
	"github.com/abhisek/kidboard/internal/screens"
	"github.com/abhisek/kidboard/internal/screens/placeholder"
	quizscreen "github.com/abhisek/kidboard/internal/screens/quiz"
)

func newEnv(t *testing.T) *screens.Env {
	t.Helper()
	d := dashboard.New(dashboard.Options{})
	require.NoError(t, d.Restore(context.Background()))
	return &screens.Env{
		Dashboard: d,
		Questions: func() game.QuestionSource { return quiz.NewSeeded(1) },
	}
}

func down(h *HomeScreen, n int) {
	for i := 0; i < n; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
}

func enter(h *HomeScreen) tea.Msg {
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestHome_View(t *testing.T) {
	h := New(newEnv(t))
	view := h.View(100, 50)

	assert.Contains(t, view, "Hi, Maria!")
	assert.Contains(t, view, "1250 POINTS")
	assert.Contains(t, view, "LEVEL 5")
	assert.Contains(t, view, "Fun Math")
	assert.Contains(t, view, "Art Studio")
	assert.Contains(t, view, "2/8")
}

func TestHome_FunMathOpensQuiz(t *testing.T) {
	h := New(newEnv(t))

	msg, ok := enter(h).(router.PushScreenMsg)
	require.True(t, ok)
	_, isQuiz := msg.Screen.(*quizscreen.QuizScreen)
	assert.True(t, isQuiz)
}

func TestHome_OtherActivityShowsNotice(t *testing.T) {
	h := New(newEnv(t))
	down(h, 2)

	msg, ok := enter(h).(router.PushScreenMsg)
	require.True(t, ok)
	p, isPlaceholder := msg.Screen.(*placeholder.PlaceholderScreen)
	require.True(t, isPlaceholder)
	assert.Equal(t, "Science Lab", p.Title())
	assert.True(t, strings.Contains(p.View(80, 20), "Science Lab started!"))
}

func TestHome_FunMathDisabledWithoutQuestions(t *testing.T) {
	env := newEnv(t)
	env.Questions = nil
	h := New(env)

	assert.Equal(t, 1, h.menu.Selected)
}

func TestHome_QuitAndRefresh(t *testing.T) {
	env := newEnv(t)
	h := New(env)
	down(h, len(h.menu.Items)-1)

	_, isQuit := enter(h).(tea.QuitMsg)
	assert.True(t, isQuit)

	require.NoError(t, env.Dashboard.AwardPoints(context.Background(), 100, "bonus"))
	h.Refresh()
	assert.Contains(t, h.View(100, 50), "1350 POINTS")
	assert.Equal(t, len(h.menu.Items)-1, h.menu.Selected, "selection survives refresh")
}

func TestHome_UpdateNote(t *testing.T) {
	env := newEnv(t)
	env.LatestVersion = func(context.Context) (string, bool) { return "v1.2.0", true }
	h := New(env)

	h.Update(h.Init()())
	assert.Contains(t, h.View(100, 50), "New version v1.2.0 available")
}
