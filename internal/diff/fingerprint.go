package diff

import (
	"crypto/sha256"
	"encoding/hex"
)

// contentFingerprint hashes the text of every emitted line, each terminated by a newline.
func contentFingerprint(lines []Line) string {
	h := sha256.New()
	for _, l := range lines {
		h.Write([]byte(l.Text))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// pathFingerprint hashes only the path. It is stable across commits and is
// kept for consumers that stored fingerprints from older releases.
func pathFingerprint(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}
