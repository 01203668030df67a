// Package game runs the Fun Math quiz: one question at a time, points for
// every correct answer.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kidboard/internal/quiz"
)

const (
	// PointsPerCorrect is awarded to the learner for every correct answer.
	PointsPerCorrect = 10

	// AutoAdvanceDelay is how long a correct answer stays on screen before
	// the next question replaces it.
	AutoAdvanceDelay = 1500 * time.Millisecond

	// ReasonCorrectAnswer labels points awarded by the quiz.
	ReasonCorrectAnswer = "math-quiz"
)

// ErrAlreadyAnswered is returned when the current question was already
// answered. Options stay locked until Next.
var ErrAlreadyAnswered = errors.New("question already answered")

// QuestionSource produces questions. *quiz.Generator satisfies it.
type QuestionSource interface {
	Generate() quiz.Question
}

// PointsAwarder credits points to the learner's progression.
type PointsAwarder interface {
	AwardPoints(ctx context.Context, amount int, reason string) error
}

// AnswerRecorder receives every graded attempt.
type AnswerRecorder interface {
	RecordAnswer(ctx context.Context, a Attempt) error
}

// Attempt is one graded answer.
type Attempt struct {
	SessionID string
	Question  quiz.Question
	Submitted int
	Result    quiz.Result
	Elapsed   time.Duration
	Streak    int
}

// Option configures a Game.
type Option func(*Game)

// WithRecorder sets the recorder that receives each attempt.
func WithRecorder(r AnswerRecorder) Option {
	return func(g *Game) { g.recorder = r }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(g *Game) { g.sessionID = id }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// Game is the state of one quiz round. It is owned by a single screen and
// not safe for concurrent use.
type Game struct {
	gen      QuestionSource
	awarder  PointsAwarder
	recorder AnswerRecorder
	now      func() time.Time

	sessionID string
	startedAt time.Time

	current quiz.Question
	result  *quiz.Result
	askedAt time.Time

	score      int
	streak     int
	bestStreak int
	attempts   int
	correct    int
}

// New starts a game and generates its first question.
func New(gen QuestionSource, awarder PointsAwarder, opts ...Option) *Game {
	g := &Game{
		gen:     gen,
		awarder: awarder,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.sessionID == "" {
		g.sessionID = uuid.NewString()
	}
	g.startedAt = g.now()
	g.Next()
	return g
}

// SessionID identifies this game in persisted events.
func (g *Game) SessionID() string { return g.sessionID }

// Question returns the question on screen.
func (g *Game) Question() quiz.Question { return g.current }

// Result returns the outcome of the current question, or nil before it
// is answered.
func (g *Game) Result() *quiz.Result { return g.result }

// Answered reports whether the current question is locked.
func (g *Game) Answered() bool { return g.result != nil }

// Score is the points earned in this game only.
func (g *Game) Score() int { return g.score }

// Streak is the current run of correct answers.
func (g *Game) Streak() int { return g.streak }

// Answer grades submitted against the current question. A correct answer
// awards PointsPerCorrect. The result is returned even when awarding or
// recording fails.
func (g *Game) Answer(ctx context.Context, submitted int) (quiz.Result, error) {
	if g.result != nil {
		return *g.result, ErrAlreadyAnswered
	}

	res := quiz.Grade(g.current, submitted)
	g.result = &res
	g.attempts++

	if res.Correct {
		g.correct++
		g.streak++
		g.score += PointsPerCorrect
		if g.streak > g.bestStreak {
			g.bestStreak = g.streak
		}
	} else {
		g.streak = 0
	}

	var errs []error
	if g.recorder != nil {
		err := g.recorder.RecordAnswer(ctx, Attempt{
			SessionID: g.sessionID,
			Question:  g.current,
			Submitted: submitted,
			Result:    res,
			Elapsed:   g.now().Sub(g.askedAt),
			Streak:    g.streak,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("record answer: %w", err))
		}
	}
	if res.Correct && g.awarder != nil {
		if err := g.awarder.AwardPoints(ctx, PointsPerCorrect, ReasonCorrectAnswer); err != nil {
			errs = append(errs, fmt.Errorf("award points: %w", err))
		}
	}

	return res, errors.Join(errs...)
}

// Next replaces the current question with a new one, answered or not.
func (g *Game) Next() {
	g.current = g.gen.Generate()
	g.result = nil
	g.askedAt = g.now()
}

// Summary describes a finished or ongoing game.
type Summary struct {
	SessionID  string
	Attempts   int
	Correct    int
	Score      int
	BestStreak int
	Duration   time.Duration
}

// Accuracy returns the fraction of correct attempts, 0 with none.
func (s Summary) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Summary returns the game's totals so far.
func (g *Game) Summary() Summary {
	return Summary{
		SessionID:  g.sessionID,
		Attempts:   g.attempts,
		Correct:    g.correct,
		Score:      g.score,
		BestStreak: g.bestStreak,
		Duration:   g.now().Sub(g.startedAt),
	}
}
