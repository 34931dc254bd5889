package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Content fingerprinting for the run archive.
// Fingerprint returns the hex BLAKE2b-256 digest of content, stored with
// each archived run so history entries can be matched against the source
// file as it was when the run happened.
func Fingerprint(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ShortFingerprint truncates a full fingerprint for display in listings.
func ShortFingerprint(digest string) string {
	if len(digest) <= 12 {
		return digest
	}
	return digest[:12]
}
