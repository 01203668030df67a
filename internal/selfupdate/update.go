package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrMissingAsset  = errors.New("release is missing an asset")
)

// Stage names a step of an update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateInput selects the update.
type UpdateInput struct {
	CurrentVersion string
	// Release is the release to install. Nil looks up the latest one.
	Release *Release
}

// UpdateProgress is reported as each stage starts.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// Update installs a release over the running binary. The platform archive
// and checksums.txt are taken from the release's asset list, the archive is
// verified, and the extracted binary replaces the executable.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if IsDevBuild(input.CurrentVersion) {
		return ErrDevBuild
	}
	if progress == nil {
		progress = func(UpdateProgress) {}
	}

	rel := input.Release
	if rel == nil {
		progress(UpdateProgress{Stage: StageCheck, Message: "Checking for the latest kidboard..."})
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		rel = res.Release
	}

	archive, err := currentArchive()
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: StageDownload, Message: fmt.Sprintf("Downloading %s...", rel.Tag)})
	data, err := c.fetchAsset(ctx, rel, archive)
	if err != nil {
		return err
	}
	manifest, err := c.fetchAsset(ctx, rel, checksumsAsset)
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: StageVerify, Message: "Checking the download..."})
	if err := parseChecksums(manifest).verify(archive, data); err != nil {
		return err
	}
	bin, err := extract(archive, data)
	if err != nil {
		return fmt.Errorf("extract %s: %w", archive, err)
	}

	progress(UpdateProgress{Stage: StageInstall, Message: "Installing..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := install(target, bin); err != nil {
		return fmt.Errorf("install %s: %w", rel.Tag, err)
	}

	progress(UpdateProgress{Stage: StageDone, Message: fmt.Sprintf("kidboard is now %s", rel.Tag)})
	return nil
}

func (c *Checker) fetchAsset(ctx context.Context, rel *Release, name string) ([]byte, error) {
	url, ok := rel.Assets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", ErrMissingAsset, rel.Tag, name)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: HTTP %d", name, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// install writes bin next to target with target's mode and renames it into
// place, so a failed write leaves the old binary untouched.
func install(target string, bin []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(bin); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
