package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// CredentialLength is the length of salts and bearer tokens in characters.
const CredentialLength = 64

// NewSalt returns a fresh per-user salt from the OS CSPRNG.
func NewSalt() (string, error) {
	return randomString()
}

// NewToken returns a fresh opaque bearer token. Tokens share the salt
// generator but live in an independent value space: a token is never
// derived from, or reused as, a salt.
func NewToken() (string, error) {
	return randomString()
}

// HashPassword computes the stored password digest: base64(SHA-256(password || salt)).
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Verify recomputes the digest for the supplied password and compares it
// against the stored hash in constant time.
func Verify(password, salt, hash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func randomString() (string, error) {
	buf := make([]byte, CredentialLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("security: reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
