package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// PointsEventData records one change to the point total.
type PointsEventData struct {
	Amount      int
	Reason      string
	PointsAfter int
	LevelAfter  int
}

// PointsEventRecord is a stored points event.
type PointsEventRecord struct {
	PointsEventData
	Sequence  int64
	Timestamp time.Time
}

// AnswerEventData records one graded quiz answer.
type AnswerEventData struct {
	SessionID string
	A, B      int
	Answer    int
	Submitted int
	Correct   bool
	TimeMs    int64
}

// AnswerStatsRecord aggregates every stored answer.
type AnswerStatsRecord struct {
	Attempts int
	Correct  int
}

// Accuracy returns Correct/Attempts, or 0 with no attempts.
func (a AnswerStatsRecord) Accuracy() float64 {
	if a.Attempts == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Attempts)
}

// AchievementEventData records an unlocked achievement.
type AchievementEventData struct {
	AchievementID string
	Title         string
	SessionID     string
}

// AchievementEventRecord is a stored achievement event.
type AchievementEventRecord struct {
	AchievementEventData
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string

	// The quiz question a coach request was about. Question is empty for
	// requests made outside a quiz.
	SessionID string
	Question  string
	Answer    int
	Submitted int
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMFilter narrows QueryLLMEvents. Empty fields match everything.
type LLMFilter struct {
	Purpose   string
	SessionID string
}

// LLMUsageRecord aggregates LLM events sharing a quiz session or a model.
type LLMUsageRecord struct {
	SessionID    string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendPointsEvent(ctx context.Context, data PointsEventData) error
	QueryPointsEvents(ctx context.Context, opts QueryOpts) ([]PointsEventRecord, error)

	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AnswerStats(ctx context.Context) (AnswerStatsRecord, error)

	// AppendAchievementEvent records an unlock. Unlocking the same
	// achievement twice is a no-op.
	AppendAchievementEvent(ctx context.Context, data AchievementEventData) error
	QueryAchievementEvents(ctx context.Context, opts QueryOpts) ([]AchievementEventRecord, error)

	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts, filter LLMFilter) ([]LLMEventRecord, error)
	// GetLLMEvent returns the event with id, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
	// LLMUsageBySession groups requests by quiz session, most recent
	// session first. Requests made outside a quiz share an empty SessionID.
	LLMUsageBySession(ctx context.Context) ([]LLMUsageRecord, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsageRecord, error)

	// LastSequence returns the newest sequence number handed out.
	LastSequence(ctx context.Context) (int64, error)
}

// SnapshotData captures the learner state at a point in time.
type SnapshotData struct {
	Version      int            `json:"version"`
	Points       int            `json:"points"`
	Level        int            `json:"level"`
	Achievements []string       `json:"achievements,omitempty"`
	Activities   map[string]int `json:"activities,omitempty"`
	Attempts     int            `json:"attempts"`
	Correct      int            `json:"correct"`
	BestStreak   int            `json:"best_streak"`
	AvatarSaved  bool           `json:"avatar_saved,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}
