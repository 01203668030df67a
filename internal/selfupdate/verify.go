package selfupdate

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// checksumsAsset is the sha256sum manifest published with each release.
const checksumsAsset = "checksums.txt"

var ErrChecksum = errors.New("checksum verification failed")

// checksums maps asset names to hex sha256 digests.
type checksums map[string]string

// parseChecksums reads sha256sum output. Binary-mode entries ("hash *name")
// are accepted. Malformed lines are skipped.
func parseChecksums(data []byte) checksums {
	sums := make(checksums)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums
}

// verify checks data against the digest recorded for name.
func (s checksums) verify(name string, data []byte) error {
	want, ok := s[name]
	if !ok {
		return fmt.Errorf("%w: %s is not listed in %s", ErrChecksum, name, checksumsAsset)
	}
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("%w: %s has sha256 %s, want %s", ErrChecksum, name, got, want)
	}
	return nil
}
