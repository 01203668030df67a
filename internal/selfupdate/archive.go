package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"
	"runtime"
	"strings"
)

// binaryName is the executable inside release archives.
const binaryName = "kidboard"

// platforms lists the GOOS/GOARCH pairs a release ships archives for.
var platforms = map[string]bool{
	"darwin/amd64":  true,
	"darwin/arm64":  true,
	"linux/amd64":   true,
	"linux/arm64":   true,
	"windows/amd64": true,
}

// archiveFor names the release archive for a platform, for example
// kidboard_linux_amd64.tar.gz. Windows builds ship as zip.
func archiveFor(goos, goarch string) (string, error) {
	if !platforms[goos+"/"+goarch] {
		return "", fmt.Errorf("no kidboard release for %s/%s", goos, goarch)
	}
	ext := ".tar.gz"
	if goos == "windows" {
		ext = ".zip"
	}
	return fmt.Sprintf("%s_%s_%s%s", binaryName, goos, goarch, ext), nil
}

func currentArchive() (string, error) {
	return archiveFor(runtime.GOOS, runtime.GOARCH)
}

// extract pulls the kidboard executable out of a downloaded archive.
func extract(archive string, data []byte) ([]byte, error) {
	if strings.HasSuffix(archive, ".zip") {
		return fromZip(data, binaryName+".exe")
	}
	return fromTarGz(data, binaryName)
}

func fromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func fromZip(data []byte, name string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, zf := range r.File {
		if path.Base(zf.Name) != name {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}
