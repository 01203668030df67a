// Package dashboard owns the learner's state and connects gameplay to
// persistence.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/kidboard/internal/achievements"
	"github.com/abhisek/kidboard/internal/activities"
	"github.com/abhisek/kidboard/internal/avatar"
	"github.com/abhisek/kidboard/internal/game"
	"github.com/abhisek/kidboard/internal/profile"
	"github.com/abhisek/kidboard/internal/progression"
	"github.com/abhisek/kidboard/internal/store"
)

const (
	// snapshotVersion is written into every snapshot.
	snapshotVersion = 1

	// KeepSnapshots is how many snapshots Checkpoint retains.
	KeepSnapshots = 5

	// MathProgressPerCorrect is the math activity progress gained per
	// correct quiz answer, in percent.
	MathProgressPerCorrect = 1
)

// Options configures a Dashboard. Every field is optional.
type Options struct {
	// Events and Snapshots enable history. Without them state lives only
	// in memory.
	Events    store.EventRepo
	Snapshots store.SnapshotRepo

	// ProfilePath is where profile changes are saved. Empty disables saving.
	ProfilePath string
	Profile     *profile.Profile

	Logger *zap.Logger
	Now    func() time.Time
}

// Dashboard is the application root.
type Dashboard struct {
	Progress     *progression.Store
	Achievements *achievements.Service
	Activities   *activities.Board

	events      store.EventRepo
	snapshots   store.SnapshotRepo
	profilePath string
	logger      *zap.Logger
	now         func() time.Time

	mu          sync.Mutex
	profile     profile.Profile
	session     string
	attempts    int
	correct     int
	bestStreak  int
	avatarSaved bool
	pending     []achievements.Award
}

var (
	_ game.PointsAwarder  = (*Dashboard)(nil)
	_ game.AnswerRecorder = (*Dashboard)(nil)
)

// New creates a Dashboard at the default progression state.
func New(opts Options) *Dashboard {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	p := profile.Default()
	if opts.Profile != nil {
		p = *opts.Profile
	}

	var sink achievements.EventSink
	if opts.Events != nil {
		sink = opts.Events
	}

	d := &Dashboard{
		Progress:     progression.NewDefault(),
		Achievements: achievements.NewService(sink, logger.Named("achievements")),
		Activities:   activities.NewBoard(activities.DefaultCatalog()),
		events:       opts.Events,
		snapshots:    opts.Snapshots,
		profilePath:  opts.ProfilePath,
		logger:       logger,
		now:          now,
		profile:      p,
		avatarSaved:  p.Avatar != "",
	}
	d.Progress.OnChange(func(c progression.Change) {
		if c.LevelledUp() {
			logger.Info("level up",
				zap.Int("from", c.Before.Level),
				zap.Int("to", c.After.Level),
				zap.Int("points", c.After.Points))
		}
	})
	return d
}

// Restore loads the latest snapshot, if any, and evaluates achievements
// against the resulting state. Awards unlocked here are queued like any
// other.
func (d *Dashboard) Restore(ctx context.Context) error {
	if d.snapshots != nil {
		snap, err := d.snapshots.Latest(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap != nil {
			d.apply(snap.Data)
			d.logger.Debug("restored snapshot",
				zap.Int("id", snap.ID),
				zap.Int("points", snap.Data.Points),
				zap.Int("level", snap.Data.Level))
		}
	}
	d.evaluate(ctx)
	return nil
}

func (d *Dashboard) apply(data store.SnapshotData) {
	d.Progress.Restore(progression.State{Points: data.Points, Level: data.Level})
	d.Achievements.Load(data.Achievements)
	for kind, pct := range data.Activities {
		d.Activities.SetProgress(activities.Kind(kind), pct)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.attempts = data.Attempts
	d.correct = data.Correct
	d.bestStreak = data.BestStreak
	d.avatarSaved = d.avatarSaved || data.AvatarSaved
}

// AwardPoints adds amount to the progression, records a points event and
// evaluates achievements. Persistence failures are logged, not returned.
func (d *Dashboard) AwardPoints(ctx context.Context, amount int, reason string) error {
	change := d.Progress.AddPoints(amount)

	if d.events != nil {
		err := d.events.AppendPointsEvent(ctx, store.PointsEventData{
			Amount:      amount,
			Reason:      reason,
			PointsAfter: change.After.Points,
			LevelAfter:  change.After.Level,
		})
		if err != nil {
			d.logger.Warn("append points event", zap.Error(err))
		}
	}
	d.evaluate(ctx)
	return nil
}

// RecordAnswer stores a graded attempt and updates the answer counters.
// A correct answer advances the math activity.
func (d *Dashboard) RecordAnswer(ctx context.Context, a game.Attempt) error {
	d.mu.Lock()
	d.session = a.SessionID
	d.attempts++
	if a.Result.Correct {
		d.correct++
	}
	if a.Streak > d.bestStreak {
		d.bestStreak = a.Streak
	}
	d.mu.Unlock()

	if a.Result.Correct {
		d.Activities.Advance(activities.KindMath, MathProgressPerCorrect)
	}

	if d.events != nil {
		err := d.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID: a.SessionID,
			A:         a.Question.A,
			B:         a.Question.B,
			Answer:    a.Question.Answer,
			Submitted: a.Submitted,
			Correct:   a.Result.Correct,
			TimeMs:    a.Elapsed.Milliseconds(),
		})
		if err != nil {
			d.logger.Warn("append answer event", zap.Error(err))
		}
	}
	return nil
}

// SaveAvatar stores a complete avatar in the profile.
func (d *Dashboard) SaveAvatar(ctx context.Context, a avatar.Avatar) error {
	encoded, err := a.Encode()
	if err != nil {
		return err
	}

	d.mu.Lock()
	p := d.profile
	p.Avatar = encoded
	d.mu.Unlock()

	if err := d.saveProfile(p); err != nil {
		return err
	}

	d.mu.Lock()
	d.avatarSaved = true
	d.mu.Unlock()
	d.evaluate(ctx)
	return nil
}

// SetUsername validates and stores a new username.
func (d *Dashboard) SetUsername(name string) error {
	d.mu.Lock()
	p := d.profile
	d.mu.Unlock()

	p.Username = name
	if err := p.Validate(); err != nil {
		return err
	}
	return d.saveProfile(p)
}

// SaveSettings stores new display settings.
func (d *Dashboard) SaveSettings(settings profile.Settings) error {
	d.mu.Lock()
	p := d.profile
	d.mu.Unlock()

	p.Settings = settings
	return d.saveProfile(p)
}

func (d *Dashboard) saveProfile(p profile.Profile) error {
	if d.profilePath != "" {
		if err := profile.Save(d.profilePath, p); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
	}
	d.mu.Lock()
	d.profile = p
	d.mu.Unlock()
	return nil
}

// Profile returns the current profile.
func (d *Dashboard) Profile() profile.Profile {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.profile
}

// DrainAwards returns achievements unlocked since the last call.
func (d *Dashboard) DrainAwards() []achievements.Award {
	d.mu.Lock()
	defer d.mu.Unlock()
	awards := d.pending
	d.pending = nil
	return awards
}

func (d *Dashboard) stats() achievements.Stats {
	st := d.Progress.State()
	d.mu.Lock()
	defer d.mu.Unlock()
	return achievements.Stats{
		Points:         st.Points,
		Level:          st.Level,
		CorrectAnswers: d.correct,
		BestStreak:     d.bestStreak,
		AvatarSaved:    d.avatarSaved,
	}
}

func (d *Dashboard) evaluate(ctx context.Context) {
	stats := d.stats()

	d.mu.Lock()
	session := d.session
	d.mu.Unlock()

	awards := d.Achievements.Evaluate(ctx, stats, session)
	if len(awards) == 0 {
		return
	}
	for _, a := range awards {
		d.logger.Info("achievement unlocked", zap.String("id", a.Achievement.ID))
	}
	d.mu.Lock()
	d.pending = append(d.pending, awards...)
	d.mu.Unlock()
}

// Checkpoint saves a snapshot of the current state and prunes old ones.
// It is a no-op without a snapshot repo.
func (d *Dashboard) Checkpoint(ctx context.Context) error {
	if d.snapshots == nil {
		return nil
	}

	var seq int64
	if d.events != nil {
		s, err := d.events.LastSequence(ctx)
		if err != nil {
			return fmt.Errorf("read sequence: %w", err)
		}
		seq = s
	}

	st := d.Progress.State()
	d.mu.Lock()
	data := store.SnapshotData{
		Version:     snapshotVersion,
		Points:      st.Points,
		Level:       st.Level,
		Attempts:    d.attempts,
		Correct:     d.correct,
		BestStreak:  d.bestStreak,
		AvatarSaved: d.avatarSaved,
	}
	d.mu.Unlock()
	data.Achievements = d.Achievements.IDs()
	data.Activities = d.Activities.Progress()

	if err := d.snapshots.Save(ctx, &store.Snapshot{Sequence: seq, Timestamp: d.now(), Data: data}); err != nil {
		return err
	}
	if err := d.snapshots.Prune(ctx, KeepSnapshots); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
