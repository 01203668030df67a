package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kidboard/internal/coach"
	"github.com/abhisek/kidboard/internal/config"
	"github.com/abhisek/kidboard/internal/dashboard"
	"github.com/abhisek/kidboard/internal/llm"
	"github.com/abhisek/kidboard/internal/logging"
	"github.com/abhisek/kidboard/internal/profile"
	"github.com/abhisek/kidboard/internal/store"
)

// runtime is everything a command needs, opened from the config.
type runtime struct {
	cfg         config.Config
	logger      *zap.Logger
	store       *store.Store
	dashboard   *dashboard.Dashboard
	profilePath string
	firstRun    bool
	// readOnly skips the final checkpoint.
	readOnly bool
}

// openRuntime builds the logger, opens the store, loads the profile and
// restores the dashboard.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	return open(cmd, false)
}

// openInspector opens the runtime for commands that only display state.
// Closing it writes no snapshot.
func openInspector(cmd *cobra.Command) (*runtime, error) {
	return open(cmd, true)
}

func open(cmd *cobra.Command, readOnly bool) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if logPath, err := cfg.LogPath(); err == nil {
		if l, err := logging.New(logPath, cfg.Verbose); err == nil {
			logger = l
		} else {
			fmt.Fprintln(os.Stderr, "logging disabled:", err)
		}
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	profilePath, err := cfg.ProfilePath()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("resolve profile path: %w", err)
	}
	_, statErr := os.Stat(profilePath)
	firstRun := errors.Is(statErr, fs.ErrNotExist)

	p, err := profile.Load(profilePath)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load profile: %w", err)
	}

	d := dashboard.New(dashboard.Options{
		Events:      st.EventRepo(),
		Snapshots:   st.SnapshotRepo(),
		ProfilePath: profilePath,
		Profile:     &p,
		Logger:      logger.Named("dashboard"),
	})
	if err := d.Restore(cmd.Context()); err != nil {
		st.Close()
		return nil, fmt.Errorf("restore dashboard: %w", err)
	}
	// Awards unlocked by restoring are not news to the learner.
	d.DrainAwards()

	logger.Debug("runtime ready",
		zap.String("dsn", dsn),
		zap.String("profile", profilePath),
		zap.Bool("first_run", firstRun))

	return &runtime{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		dashboard:   d,
		profilePath: profilePath,
		firstRun:    firstRun,
		readOnly:    readOnly,
	}, nil
}

// newCoach returns an LLM-backed coach when a provider is configured, and
// the local one otherwise.
func (r *runtime) newCoach(ctx context.Context) *coach.Service {
	cfg, err := llm.ConfigFromEnv()
	if err != nil || !cfg.Enabled() {
		if err != nil {
			r.logger.Warn("llm config", zap.Error(err))
		}
		return coach.NewService(coach.Local{})
	}

	provider, err := llm.New(ctx, cfg, r.store.EventRepo(), r.logger.Named("llm"))
	if err != nil {
		r.logger.Warn("llm provider unavailable", zap.Error(err))
		return coach.NewService(coach.Local{})
	}
	r.logger.Info("coach uses llm", zap.String("provider", cfg.Provider), zap.String("model", provider.ModelID()))
	return coach.NewService(coach.NewLLM(provider, coach.DefaultConfig(), r.logger.Named("coach")))
}

// Close saves a final snapshot, unless opened by openInspector, and
// releases the store.
func (r *runtime) Close() {
	if !r.readOnly {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.dashboard.Checkpoint(ctx); err != nil {
			r.logger.Warn("final checkpoint", zap.Error(err))
		}
	}
	if err := r.store.Close(); err != nil {
		r.logger.Warn("close store", zap.Error(err))
	}
	_ = r.logger.Sync()
}
