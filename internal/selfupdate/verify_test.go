package selfupdate

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte("ABC123  kidboard_linux_amd64.tar.gz\n" +
		"def456 *kidboard_windows_amd64.zip\n" +
		"junk\n\n" +
		"a b c\n"))
	assert.Equal(t, checksums{
		"kidboard_linux_amd64.tar.gz": "abc123",
		"kidboard_windows_amd64.zip":  "def456",
	}, got)
}

func TestChecksumsVerify(t *testing.T) {
	data := []byte("archive bytes")
	sum := sha256.Sum256(data)
	sums := checksums{"a.tar.gz": hex.EncodeToString(sum[:])}

	assert.NoError(t, sums.verify("a.tar.gz", data))

	err := sums.verify("a.tar.gz", []byte("tampered"))
	require.ErrorIs(t, err, ErrChecksum)

	err = sums.verify("b.tar.gz", data)
	require.ErrorIs(t, err, ErrChecksum)
	assert.Contains(t, err.Error(), "not listed")
}
