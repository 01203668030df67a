// Package profile stores the learner's name, avatar and settings as YAML.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// MaxUsernameLen is the longest accepted username, in runes.
const MaxUsernameLen = 32

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid profile")

// Settings are the learner's display preferences. DarkMode and
// HighContrast pick the palette; Animations plays the splash.
type Settings struct {
	DarkMode     bool `yaml:"dark_mode"`
	HighContrast bool `yaml:"high_contrast"`
	Animations   bool `yaml:"animations"`
}

// Profile is the learner's persistent identity.
type Profile struct {
	Username string   `yaml:"username"`
	Avatar   string   `yaml:"avatar,omitempty"`
	Settings Settings `yaml:"settings"`
}

// Default returns the profile used before anything is saved.
func Default() Profile {
	return Profile{
		Username: "Maria",
		Settings: Settings{
			DarkMode:   true,
			Animations: true,
		},
	}
}

// Validate checks the username length.
func (p Profile) Validate() error {
	n := utf8.RuneCountInString(p.Username)
	switch {
	case n == 0:
		return fmt.Errorf("%w: username is empty", ErrInvalid)
	case n > MaxUsernameLen:
		return fmt.Errorf("%w: username longer than %d characters", ErrInvalid, MaxUsernameLen)
	}
	return nil
}

// Load reads the profile at path. A missing file yields Default.
// Fields absent from the file keep their default values.
func Load(path string) (Profile, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), err
	}
	return p, nil
}

// Save validates p and writes it to path atomically.
func Save(path string, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".profile-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close profile: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/kidboard/profile.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "kidboard", "profile.yaml"), nil
}
