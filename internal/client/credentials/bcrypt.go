package credentials

import "golang.org/x/crypto/bcrypt"

// Bcrypt stores bcrypt hashes at the library's default cost.
type Bcrypt struct {
	// Cost overrides bcrypt.DefaultCost when non-zero.
	Cost int
}

func (b Bcrypt) Seal(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (Bcrypt) Verify(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
