package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
)

// Keys of the older single-list layout, where "user" held the signed-in
// account and "favorites" held that account's list.
const (
	LegacyKeyUser      = "user"
	LegacyKeyFavorites = "favorites"
)

// MigrateLegacy folds the single-list layout into the per-account one and
// deletes the old keys. Existing canonical data always wins:
//   - "user" becomes currentUser only when no currentUser is stored, and is
//     added to users unless an account with that name already exists;
//   - "favorites" becomes userFavorites[currentUser] only when that entry is
//     missing.
//
// The snapshot is then aligned with the per-account list. It reports whether
// any legacy key was found. Run it inside a transaction.
func (r *Registry) MigrateLegacy(ctx context.Context) (bool, error) {
	legacyUser, err := r.kv.Get(ctx, LegacyKeyUser)
	if err != nil {
		return false, err
	}
	legacyFavs, err := r.kv.Get(ctx, LegacyKeyFavorites)
	if err != nil {
		return false, err
	}
	if legacyUser == nil && legacyFavs == nil {
		return false, nil
	}

	current, err := r.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	if current == nil && legacyUser != nil {
		var u models.User
		if err := json.Unmarshal(legacyUser, &u); err != nil {
			return false, fmt.Errorf("failed to decode legacy %s: %w: %w", LegacyKeyUser, ErrCorrupt, err)
		}
		if u.Username != "" {
			if err := r.ensureAccount(ctx, u); err != nil {
				return false, err
			}
			current = &u
		}
	}

	if current != nil && legacyFavs != nil {
		var favs []models.Country
		if err := json.Unmarshal(legacyFavs, &favs); err != nil {
			return false, fmt.Errorf("failed to decode legacy %s: %w: %w", LegacyKeyFavorites, ErrCorrupt, err)
		}

		stored, ok, err := r.FavoritesOf(ctx, current.Username)
		if err != nil {
			return false, err
		}
		if !ok {
			stored = models.DedupeByCode(favs)
			if err := r.SaveFavoritesOf(ctx, current.Username, stored); err != nil {
				return false, err
			}
		}
		current.Favorites = stored
	}

	if current != nil {
		if err := r.SaveCurrentUser(ctx, *current); err != nil {
			return false, err
		}
	}

	if err := r.kv.Delete(ctx, LegacyKeyUser); err != nil {
		return false, err
	}
	if err := r.kv.Delete(ctx, LegacyKeyFavorites); err != nil {
		return false, err
	}
	return true, nil
}

// ensureAccount appends u to users when no account has its name, so a
// promoted legacy user can sign in again after logging out.
func (r *Registry) ensureAccount(ctx context.Context, u models.User) error {
	existing, err := r.FindUser(ctx, u.Username)
	if err != nil || existing != nil {
		return err
	}
	users, err := r.Users(ctx)
	if err != nil {
		return err
	}
	users = append(users, models.User{Username: u.Username, Password: u.Password, Favorites: []models.Country{}})
	return r.SaveUsers(ctx, users)
}
