package history

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kidboard/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestHistory_Disabled(t *testing.T) {
	s := New(nil)
	assert.Nil(t, s.Init())
	assert.Contains(t, s.View(80, 20), "History is off")
}

func TestHistory_LoadsEvents(t *testing.T) {
	st := openStore(t)
	repo := st.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendPointsEvent(ctx, store.PointsEventData{Amount: 10, Reason: "quiz", PointsAfter: 1260, LevelAfter: 5}))
	require.NoError(t, repo.AppendPointsEvent(ctx, store.PointsEventData{Amount: 50, Reason: "bonus", PointsAfter: 1310, LevelAfter: 5}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, store.AnswerEventData{SessionID: "s1", A: 1, B: 2, Answer: 3, Submitted: 3, Correct: true}))

	s := New(repo)
	msg := s.Init()()
	s.Update(msg)

	require.Len(t, s.events, 2)
	view := s.View(100, 30)
	assert.Contains(t, view, "+50  bonus")
	assert.Contains(t, view, "1 answers  1 correct  100% accuracy")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, strings.Contains(s.View(100, 30), "total 1310"))
}

func TestHistory_Empty(t *testing.T) {
	s := New(openStore(t).EventRepo())
	s.Update(s.Init()())
	assert.Contains(t, s.View(80, 20), "No points yet")
}
