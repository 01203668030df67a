package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"linux", "amd64", "kidboard_linux_amd64.tar.gz", false},
		{"linux", "arm64", "kidboard_linux_arm64.tar.gz", false},
		{"darwin", "arm64", "kidboard_darwin_arm64.tar.gz", false},
		{"windows", "amd64", "kidboard_windows_amd64.zip", false},
		{"windows", "386", "", true},
		{"plan9", "amd64", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := archiveFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract(t *testing.T) {
	bin := []byte("#!/bin/sh\necho kidboard")

	t.Run("tar.gz nested", func(t *testing.T) {
		got, err := extract("kidboard_linux_amd64.tar.gz", buildTarGz(t, "kidboard_v1/kidboard", bin))
		require.NoError(t, err)
		assert.Equal(t, bin, got)
	})

	t.Run("zip", func(t *testing.T) {
		got, err := extract("kidboard_windows_amd64.zip", buildZip(t, "kidboard.exe", bin))
		require.NoError(t, err)
		assert.Equal(t, bin, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := extract("kidboard_linux_amd64.tar.gz", buildTarGz(t, "README.md", bin))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Size:     int64(len(content)),
		Mode:     0o755,
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func buildZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
