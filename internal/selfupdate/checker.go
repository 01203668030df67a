// Package selfupdate replaces the running kidboard binary with the latest
// GitHub release.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner   = "abhisek"
	defaultRepo    = "kidboard"
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 10 * time.Second
)

// Checker looks up releases and applies updates.
type Checker struct {
	client   *http.Client
	owner    string
	repo     string
	baseURL  string
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithRepository points the checker at another owner/repo.
func WithRepository(owner, repo string) Option {
	return func(c *Checker) { c.owner, c.repo = owner, repo }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker for the kidboard repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:   &http.Client{Timeout: defaultTimeout},
		owner:    defaultOwner,
		repo:     defaultRepo,
		baseURL:  defaultBaseURL,
		execPath: os.Executable,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Release is a published kidboard release.
type Release struct {
	Tag string
	URL string
	// Assets maps asset file names to their download URLs.
	Assets map[string]string
}

// CheckInput is the running version.
type CheckInput struct {
	Version string
}

// CheckResult describes the latest release relative to the running version.
type CheckResult struct {
	CurrentVersion  string
	Release         *Release
	UpdateAvailable bool
}

// LatestVersion is the tag of the latest release.
func (r *CheckResult) LatestVersion() string {
	if r.Release == nil {
		return ""
	}
	return r.Release.Tag
}

type releaseJSON struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name string `json:"name"`
		URL  string `json:"browser_download_url"`
	} `json:"assets"`
}

// Check fetches the latest release. Development builds never report an
// update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var raw releaseJSON
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	rel := &Release{Tag: raw.TagName, URL: raw.HTMLURL, Assets: make(map[string]string, len(raw.Assets))}
	for _, a := range raw.Assets {
		rel.Assets[a.Name] = a.URL
	}

	return &CheckResult{
		CurrentVersion:  input.Version,
		Release:         rel,
		UpdateAvailable: newer(rel.Tag, input.Version),
	}, nil
}

// newer reports whether latest is a higher semantic version than current.
// Invalid versions, including "(devel)", never compare as older.
func newer(latest, current string) bool {
	latest, current = canonical(latest), canonical(current)
	if !semver.IsValid(latest) || !semver.IsValid(current) {
		return false
	}
	return semver.Compare(latest, current) > 0
}

func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// IsDevBuild reports whether version is not a release version.
func IsDevBuild(version string) bool {
	return !semver.IsValid(canonical(version))
}
