// Package config resolves process settings from the environment. Command
// line flags override them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/kidboard/internal/profile"
	"github.com/abhisek/kidboard/internal/store"
)

// Config holds the settings shared by every command.
type Config struct {
	// DB is a SQLite path or DSN. Empty keeps history in memory unless
	// Persist is set.
	DB string `env:"KIDBOARD_DB"`
	// Persist stores history at the default data path when DB is empty.
	Persist bool `env:"KIDBOARD_PERSIST"`

	Profile string `env:"KIDBOARD_PROFILE"`
	Log     string `env:"KIDBOARD_LOG"`
	Verbose bool   `env:"KIDBOARD_VERBOSE"`

	// Seed fixes the quiz random source. Zero picks a time-based seed.
	Seed uint64 `env:"KIDBOARD_SEED"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom parses the given environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN returns the database to open.
func (c Config) DSN() (string, error) {
	switch {
	case c.DB != "":
		if err := store.EnsureDir(c.DB); err != nil {
			return "", fmt.Errorf("create database dir: %w", err)
		}
		return c.DB, nil
	case c.Persist:
		return store.DefaultDBPath()
	default:
		return store.MemoryDSN, nil
	}
}

// ProfilePath returns the profile file location.
func (c Config) ProfilePath() (string, error) {
	if c.Profile != "" {
		return c.Profile, nil
	}
	return profile.DefaultPath()
}

// LogPath returns the log file location:
// $XDG_STATE_HOME/kidboard/kidboard.log, falling back to ~/.local/state.
func (c Config) LogPath() (string, error) {
	if c.Log != "" {
		return c.Log, nil
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "kidboard", "kidboard.log"), nil
}

// QuizSeed returns Seed, or a seed derived from now when Seed is zero.
func (c Config) QuizSeed(now time.Time) uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(now.UnixNano())
}
