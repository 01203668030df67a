package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(dsn)
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := s.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		require.NoError(t, err, "PRAGMA %s", tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{
		"points_events", "answer_events", "achievement_events",
		"llm_request_events", "snapshots", "global_sequence",
	} {
		var got string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", name,
		).Scan(&got)
		require.NoError(t, err, "table %s", name)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		seq, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(i), seq)
	}

	cur, err := s.EventRepo().LastSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cur)
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendPointsEvent(ctx, PointsEventData{Amount: 10, Reason: "quiz", PointsAfter: 1260, LevelAfter: 5}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{A: 3, B: 4, Answer: 7, Submitted: 7, Correct: true}))
	require.NoError(t, repo.AppendPointsEvent(ctx, PointsEventData{Amount: 10, Reason: "quiz", PointsAfter: 1270, LevelAfter: 5}))

	points, err := repo.QueryPointsEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, points, 2)

	// Newest first, with the answer event's sequence in between.
	assert.Equal(t, int64(3), points[0].Sequence)
	assert.Equal(t, int64(1), points[1].Sequence)
	assert.Equal(t, 1270, points[0].PointsAfter)
}

func TestQueryPointsEventsOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		require.NoError(t, repo.AppendPointsEvent(ctx, PointsEventData{Amount: i, Reason: "quiz"}))
	}

	got, err := repo.QueryPointsEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 6, got[0].Amount)
	assert.Equal(t, 5, got[1].Amount)

	got, err = repo.QueryPointsEvents(ctx, QueryOpts{After: 2, Before: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[0].Sequence)
	assert.Equal(t, int64(3), got[1].Sequence)

	got, err = repo.QueryPointsEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnswerStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	stats, err := repo.AnswerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, AnswerStatsRecord{}, stats)
	assert.Zero(t, stats.Accuracy())

	for _, correct := range []bool{true, false, true, true} {
		require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", Correct: correct}))
	}

	stats, err = repo.AnswerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Attempts)
	assert.Equal(t, 3, stats.Correct)
	assert.InDelta(t, 0.75, stats.Accuracy(), 1e-9)
}

func TestAchievementEventsUnlockOnce(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAchievementEvent(ctx, AchievementEventData{AchievementID: "first-steps", Title: "First Steps", SessionID: "s1"}))
	require.NoError(t, repo.AppendAchievementEvent(ctx, AchievementEventData{AchievementID: "first-steps", Title: "First Steps", SessionID: "s2"}))
	require.NoError(t, repo.AppendAchievementEvent(ctx, AchievementEventData{AchievementID: "hot-streak", Title: "Hot Streak", SessionID: "s2"}))

	got, err := repo.QueryAchievementEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hot-streak", got[0].AchievementID)
	assert.Equal(t, "first-steps", got[1].AchievementID)
	assert.Equal(t, "s1", got[1].SessionID)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-x", Purpose: "explain", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true,
			RequestBody: "{}", ResponseBody: `{"tip":"count on"}`, SessionID: "quiz-1", Question: "3 + 4", Answer: 7, Submitted: 2},
		{Provider: "anthropic", Model: "claude-x", Purpose: "explain", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: true,
			SessionID: "quiz-1", Question: "5 + 5", Answer: 10, Submitted: 11},
		{Provider: "openai", Model: "gpt-x", Purpose: "explain", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, ErrorMessage: "rate limited",
			SessionID: "quiz-2", Question: "1 + 2", Answer: 3, Submitted: 4},
		{Provider: "openai", Model: "gpt-x", Purpose: "unknown", InputTokens: 1, OutputTokens: 1, LatencyMs: 10, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10}, LLMFilter{})
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Empty(t, list[0].SessionID)
	assert.Empty(t, list[0].Question)
	assert.Equal(t, "quiz-2", list[1].SessionID)
	assert.Equal(t, "rate limited", list[1].ErrorMessage)
	assert.False(t, list[1].Success)

	inQuiz, err := repo.QueryLLMEvents(ctx, QueryOpts{}, LLMFilter{SessionID: "quiz-1"})
	require.NoError(t, err)
	require.Len(t, inQuiz, 2)
	assert.Equal(t, "5 + 5", inQuiz[0].Question)

	explains, err := repo.QueryLLMEvents(ctx, QueryOpts{}, LLMFilter{Purpose: "explain"})
	require.NoError(t, err)
	assert.Len(t, explains, 3)

	first, err := repo.GetLLMEvent(ctx, list[3].ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, `{"tip":"count on"}`, first.ResponseBody)
	assert.Equal(t, "3 + 4", first.Question)
	assert.Equal(t, 7, first.Answer)
	assert.Equal(t, 2, first.Submitted)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	bySession, err := repo.LLMUsageBySession(ctx)
	require.NoError(t, err)
	assert.Equal(t, []LLMUsageRecord{
		{SessionID: "", Calls: 1, InputTokens: 1, OutputTokens: 1, AvgLatencyMs: 10},
		{SessionID: "quiz-2", Calls: 1, Failures: 1, InputTokens: 10, OutputTokens: 5, AvgLatencyMs: 50},
		{SessionID: "quiz-1", Calls: 2, InputTokens: 150, OutputTokens: 30, AvgLatencyMs: 200},
	}, bySession)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-x", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Calls)
	assert.Equal(t, 1, byModel[1].Failures)
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "expected nil snapshot when none exist")

	now := time.Now().UTC().Truncate(time.Second)
	data := SnapshotData{
		Version:      1,
		Points:       1260,
		Level:        5,
		Achievements: []string{"first-steps"},
		Activities:   map[string]int{"math": 76},
		Attempts:     3,
		Correct:      2,
		BestStreak:   2,
	}
	require.NoError(t, repo.Save(ctx, &Snapshot{Sequence: 42, Timestamp: now, Data: data}))

	snap, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(42), snap.Sequence)
	assert.Equal(t, data, snap.Data)
	assert.True(t, snap.Timestamp.Equal(now))
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1, Points: i},
		}))
	}

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Sequence)
	assert.Equal(t, 2, snap.Data.Points)
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		}))
	}

	require.NoError(t, repo.Prune(ctx, 5))
	assert.Equal(t, 5, countRows(t, s, "snapshots"))

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), snap.Sequence)

	// Fewer than keep is a no-op.
	require.NoError(t, repo.Prune(ctx, 10))
	assert.Equal(t, 5, countRows(t, s, "snapshots"))
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendPointsEvent(ctx, PointsEventData{Amount: 10}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{Correct: true}))
	require.NoError(t, repo.AppendAchievementEvent(ctx, AchievementEventData{AchievementID: "first-steps"}))
	require.NoError(t, s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 3, Timestamp: time.Now()}))

	require.NoError(t, s.Reset(ctx))

	for _, table := range []string{"points_events", "answer_events", "achievement_events", "snapshots"} {
		assert.Zero(t, countRows(t, s, table), table)
	}
	seq, err := repo.LastSequence(ctx)
	require.NoError(t, err)
	assert.Zero(t, seq)
}
