package models

import (
	"encoding/json"
	"log/slog"
)

// User is a registered account. Password holds whatever the configured
// credential verifier sealed, which is the plain password by default.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Favorites []Country `json:"favorites"`
}

// MarshalJSON always writes favorites as an array, never null.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	a := alias(u)
	if a.Favorites == nil {
		a.Favorites = []Country{}
	}
	return json.Marshal(a)
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	return User{Username: u.Username, Password: u.Password, Favorites: CloneCountries(u.Favorites)}
}

// LogValue keeps the password out of structured logs.
func (u User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", u.Username),
		slog.Int("favorites", len(u.Favorites)),
	)
}
