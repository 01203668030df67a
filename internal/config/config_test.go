package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kidboard/internal/store"
)

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"KIDBOARD_DB":      "/tmp/k.db",
		"KIDBOARD_PROFILE": "/tmp/p.yaml",
		"KIDBOARD_VERBOSE": "true",
		"KIDBOARD_SEED":    "42",
	})
	require.NoError(t, err)
	assert.Equal(t, Config{DB: "/tmp/k.db", Profile: "/tmp/p.yaml", Verbose: true, Seed: 42}, cfg)
}

func TestLoadFromRejectsBadSeed(t *testing.T) {
	_, err := LoadFrom(map[string]string{"KIDBOARD_SEED": "many"})
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	dsn, err := Config{}.DSN()
	require.NoError(t, err)
	assert.Equal(t, store.MemoryDSN, dsn)

	path := filepath.Join(t.TempDir(), "nested", "k.db")
	dsn, err = Config{DB: path}.DSN()
	require.NoError(t, err)
	assert.Equal(t, path, dsn)
	assert.DirExists(t, filepath.Dir(path))

	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dsn, err = Config{Persist: true}.DSN()
	require.NoError(t, err)
	assert.Equal(t, "kidboard.db", filepath.Base(dsn))
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	logPath, err := Config{}.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/state/kidboard/kidboard.log", logPath)

	profilePath, err := Config{}.ProfilePath()
	require.NoError(t, err)
	assert.Equal(t, "/cfg/kidboard/profile.yaml", profilePath)

	profilePath, err = Config{Profile: "/x.yaml"}.ProfilePath()
	require.NoError(t, err)
	assert.Equal(t, "/x.yaml", profilePath)
}

func TestQuizSeed(t *testing.T) {
	now := time.Unix(0, 1234)
	assert.Equal(t, uint64(7), Config{Seed: 7}.QuizSeed(now))
	assert.Equal(t, uint64(1234), Config{}.QuizSeed(now))
}
