// Package screens holds what every screen needs from the application.
package screens

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/kidboard/internal/avatar"
	"github.com/abhisek/kidboard/internal/coach"
	"github.com/abhisek/kidboard/internal/dashboard"
	"github.com/abhisek/kidboard/internal/game"
	"github.com/abhisek/kidboard/internal/store"
)

// Env is shared by all screens of one running app.
type Env struct {
	Dashboard *dashboard.Dashboard

	// Events is nil when history is disabled.
	Events store.EventRepo

	// Coach explains wrong answers. Nil disables explanations.
	Coach *coach.Service

	// Questions returns the question source for a new quiz.
	Questions func() game.QuestionSource

	// LatestVersion reports a newer release, if any. Nil skips the check.
	LatestVersion func(ctx context.Context) (version string, ok bool)

	Rand    avatar.Intn
	Catalog avatar.Catalog
	Logger  *zap.Logger
}

// Log returns the logger, or a no-op one when none is set.
func (e *Env) Log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
