package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Prefix  = "argon2id"
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// Argon2 stores "argon2id$<salt>$<key>" with base64 (raw, std) parts.
type Argon2 struct{}

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

func (Argon2) Seal(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := deriveKey([]byte(password), salt)

	enc := base64.RawStdEncoding
	return argon2Prefix + "$" + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key), nil
}

func (Argon2) Verify(stored, candidate string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != argon2Prefix {
		return false
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := enc.DecodeString(parts[2])
	if err != nil {
		return false
	}

	got := deriveKey([]byte(candidate), salt)
	return subtle.ConstantTimeCompare(want, got) == 1
}
