// Package digest computes the content digests that brand data references.
//
// All digests are BLAKE3-256 over the raw decoded bytes, hex-encoded. The
// scheme is fixed: downstream consumers compare digests for deduplication
// and identity, so every producer must hash the same way.
package digest

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Size is the digest length in bytes before hex encoding.
const Size = 32

// Sum returns the hex-encoded BLAKE3-256 digest of data.
func Sum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify reports whether data hashes to the given hex digest. The comparison
// is constant-time.
func Verify(data []byte, digest string) bool {
	sum := Sum(data)
	return len(sum) == len(digest) &&
		subtle.ConstantTimeCompare([]byte(sum), []byte(digest)) == 1
}
