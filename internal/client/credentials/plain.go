package credentials

import "crypto/subtle"

// Plain stores passwords verbatim and compares them in constant time.
type Plain struct{}

func (Plain) Seal(password string) (string, error) {
	return password, nil
}

func (Plain) Verify(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
