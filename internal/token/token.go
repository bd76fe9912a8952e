// Package token issues and verifies invoice capability tokens.
//
// An invoice has two identifiers: a shareable public id used for lookup and a
// secret edit token proving the right to mutate it. Only the SHA-256 digest of
// the edit token is ever persisted; the raw token is disclosed exactly once,
// in the creation response.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const (
	// PublicIDLength gives ~2^72 distinct ids; collisions are still handled
	// at insert time by the store's unique index.
	PublicIDLength = 12
	// EditTokenLength gives 192 bits of entropy for the bearer secret.
	EditTokenLength = 32
)

// urlAlphabet has exactly 64 symbols so a random byte masked to 6 bits maps
// uniformly onto it.
const urlAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// GeneratePublicID returns a short, URL-safe public id for an invoice.
func GeneratePublicID() (string, error) {
	return generate(PublicIDLength)
}

// GenerateEditToken returns a random edit token.
func GenerateEditToken() (string, error) {
	return generate(EditTokenLength)
}

func generate(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = urlAlphabet[b&63]
	}
	return string(out), nil
}

// HashToken hashes the raw token using SHA-256, hex encoded.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Verify hashes candidate and compares it against storedHash in constant
// time. A malformed stored hash or a length mismatch is a plain non-match,
// never an error.
func Verify(candidate, storedHash string) bool {
	if candidate == "" || storedHash == "" {
		return false
	}

	provided, err := hex.DecodeString(HashToken(candidate))
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(storedHash)
	if err != nil {
		return false
	}
	if len(provided) != len(stored) {
		return false
	}

	return subtle.ConstantTimeCompare(provided, stored) == 1
}
