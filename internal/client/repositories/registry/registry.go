// Package registry gives typed, JSON-encoded access to the durable registry
// kept in the kv store. Key names and value layouts are fixed; existing
// registry files depend on them byte for byte:
//
//	users          []User                 all registered accounts
//	currentUser    User                   active session snapshot
//	userFavorites  map[string][]Country   favorites per username
//
// A Registry does no locking or transaction handling of its own; bind it to a
// transactional kv.Repository to make several writes atomic.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
	"github.com/dmitrijs2005/countryexplorer/internal/client/repositories/kv"
)

const (
	KeyUsers         = "users"
	KeyCurrentUser   = "currentUser"
	KeyUserFavorites = "userFavorites"
)

// ErrCorrupt marks a stored value that exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt registry value")

type Registry struct {
	kv kv.Repository
}

func New(repo kv.Repository) *Registry {
	return &Registry{kv: repo}
}

func (r *Registry) load(ctx context.Context, key string, v any) (bool, error) {
	b, err := r.kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w: %w", key, ErrCorrupt, err)
	}
	return true, nil
}

func (r *Registry) store(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.kv.Set(ctx, key, b)
}

// Users returns every registered account, or an empty list.
func (r *Registry) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := r.load(ctx, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Registry) SaveUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return r.store(ctx, KeyUsers, users)
}

// FindUser returns the account with exactly this username, or nil.
func (r *Registry) FindUser(ctx context.Context, username string) (*models.User, error) {
	users, err := r.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// CurrentUser returns the persisted session snapshot, or nil if none.
func (r *Registry) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	found, err := r.load(ctx, KeyCurrentUser, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (r *Registry) SaveCurrentUser(ctx context.Context, u models.User) error {
	return r.store(ctx, KeyCurrentUser, u)
}

func (r *Registry) ClearCurrentUser(ctx context.Context) error {
	return r.kv.Delete(ctx, KeyCurrentUser)
}

// AllFavorites returns the whole username → favorites map, never nil.
func (r *Registry) AllFavorites(ctx context.Context) (map[string][]models.Country, error) {
	all := map[string][]models.Country{}
	if _, err := r.load(ctx, KeyUserFavorites, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = map[string][]models.Country{}
	}
	return all, nil
}

// FavoritesOf returns the stored favorites for username and whether an
// entry existed at all.
func (r *Registry) FavoritesOf(ctx context.Context, username string) ([]models.Country, bool, error) {
	all, err := r.AllFavorites(ctx)
	if err != nil {
		return nil, false, err
	}
	favs, ok := all[username]
	return favs, ok, nil
}

// SaveFavoritesOf replaces the favorites of one user and leaves the other
// entries untouched.
func (r *Registry) SaveFavoritesOf(ctx context.Context, username string, favorites []models.Country) error {
	all, err := r.AllFavorites(ctx)
	if err != nil {
		return err
	}
	if favorites == nil {
		favorites = []models.Country{}
	}
	all[username] = favorites
	return r.store(ctx, KeyUserFavorites, all)
}
