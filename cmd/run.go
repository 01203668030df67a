package cmd

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidboard/internal/app"
	"github.com/abhisek/kidboard/internal/avatar"
	"github.com/abhisek/kidboard/internal/game"
	"github.com/abhisek/kidboard/internal/quiz"
	"github.com/abhisek/kidboard/internal/screens"
	"github.com/abhisek/kidboard/internal/selfupdate"
)

// runApp opens the runtime and launches the TUI.
func runApp(cmd *cobra.Command, startInQuiz bool) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	coachSvc := rt.newCoach(cmd.Context())
	defer coachSvc.Close()

	seed := rt.cfg.QuizSeed(time.Now())
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	round := uint64(0)

	env := &screens.Env{
		Dashboard: rt.dashboard,
		Events:    rt.store.EventRepo(),
		Coach:     coachSvc,
		Questions: func() game.QuestionSource {
			round++
			return quiz.NewSeeded(seed + round)
		},
		LatestVersion: latestVersionFunc(),
		Rand:          rng,
		Catalog:       avatar.DefaultCatalog(),
		Logger:        rt.logger.Named("tui"),
	}

	return app.Run(app.Options{
		Env:         env,
		FirstRun:    rt.firstRun,
		StartInQuiz: startInQuiz,
	})
}

// latestVersionFunc checks for a newer release of a release build.
func latestVersionFunc() func(context.Context) (string, bool) {
	if selfupdate.IsDevBuild(version) {
		return nil
	}
	checker := selfupdate.NewChecker()
	return func(ctx context.Context) (string, bool) {
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil || !res.UpdateAvailable {
			return "", false
		}
		return res.LatestVersion(), true
	}
}
