// Package credentials decides how account passwords are stored in the
// registry and checked at login. The session service depends only on
// Verifier, so the scheme can change without touching it.
//
// Plain keeps the stored value identical to what the user typed, so existing
// registries keep working; Argon2 and Bcrypt store a one-way hash instead.
package credentials

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownScheme = errors.New("unknown credential scheme")

// Verifier seals passwords for storage and checks candidates against them.
type Verifier interface {
	// Seal returns the value to store in place of password.
	Seal(password string) (string, error)
	// Verify reports whether candidate matches a value produced by Seal.
	Verify(stored, candidate string) bool
}

const (
	SchemePlain  = "plain"
	SchemeArgon2 = "argon2"
	SchemeBcrypt = "bcrypt"
)

// ByName returns the verifier for a config scheme name. An empty name means plain.
func ByName(name string) (Verifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SchemePlain:
		return Plain{}, nil
	case SchemeArgon2:
		return Argon2{}, nil
	case SchemeBcrypt:
		return Bcrypt{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}
