// Package services contains the application services of the client.
// This file defines the session service: the signed-in account, its
// favorite countries, and their persistence in the local registry.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/countryexplorer/internal/client/credentials"
	"github.com/dmitrijs2005/countryexplorer/internal/client/models"
	"github.com/dmitrijs2005/countryexplorer/internal/client/repositories/kv"
	"github.com/dmitrijs2005/countryexplorer/internal/client/repositories/registry"
	"github.com/dmitrijs2005/countryexplorer/internal/dbx"
	"github.com/dmitrijs2005/countryexplorer/internal/logging"
	"github.com/google/uuid"
)

// SessionService holds the current account and its favorites.
//
// Contract:
//   - Restore / StartRestore: load the persisted snapshot at startup.
//   - Register / Login: the only ways into the authenticated state.
//   - Logout: the only way out; per-account favorites are kept.
//   - AddFavorite / RemoveFavorite: need a signed-in account and write the
//     snapshot and the per-account list in one transaction.
//   - IsAuthenticated / IsFavorite / CurrentUser / Favorites: pure reads.
type SessionService interface {
	Restore(ctx context.Context) error
	StartRestore(ctx context.Context) <-chan error
	Loading() bool

	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error

	IsAuthenticated() bool
	CurrentUser() (models.User, bool)
	Favorites() []models.Country

	AddFavorite(ctx context.Context, country models.Country) error
	RemoveFavorite(ctx context.Context, code string) error
	IsFavorite(code string) bool

	Subscribe(fn func(*models.User)) (cancel func())
}

// Session is the SessionService backed by the SQLite registry.
//
// Every mutation writes the registry first and swaps the in-memory state
// only after the transaction commits, so a failed write changes nothing.
// All methods are safe for concurrent use.
type Session struct {
	db       *sql.DB
	verifier credentials.Verifier
	logger   logging.Logger

	mu        sync.Mutex
	current   *models.User
	loading   bool
	listeners map[int]func(*models.User)
	nextID    int
}

var _ SessionService = (*Session)(nil)

// NewSessionService builds an anonymous session over db. A nil verifier
// means credentials.Plain. Loading reports true until the first Restore ends.
func NewSessionService(db *sql.DB, verifier credentials.Verifier, logger logging.Logger) *Session {
	if verifier == nil {
		verifier = credentials.Plain{}
	}
	return &Session{
		db:        db,
		verifier:  verifier,
		logger:    logger.With("component", "session", "session_id", uuid.NewString()),
		loading:   true,
		listeners: make(map[int]func(*models.User)),
	}
}

func (s *Session) withRegistry(ctx context.Context, fn func(ctx context.Context, reg *registry.Registry) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, registry.New(kv.NewSQLiteRepository(tx)))
	})
}

func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// snapshotLocked returns a copy of the current user, or nil.
func (s *Session) snapshotLocked() *models.User {
	if s.current == nil {
		return nil
	}
	u := s.current.Clone()
	return &u
}

// unlockAndNotify releases mu and then tells listeners about the new state,
// so listeners may call back into the session.
func (s *Session) unlockAndNotify() {
	snapshot := s.snapshotLocked()
	fns := make([]func(*models.User), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		if snapshot == nil {
			fn(nil)
			continue
		}
		u := snapshot.Clone()
		fn(&u)
	}
}

// Restore folds any legacy-layout data into the registry, then adopts the
// persisted currentUser snapshot if there is one. A corrupt snapshot is
// logged and ignored; a storage failure is returned and the session stays
// anonymous.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.unlockAndNotify()
	defer func() { s.loading = false }()

	if err := s.withRegistry(ctx, func(ctx context.Context, reg *registry.Registry) error {
		migrated, err := reg.MigrateLegacy(ctx)
		if migrated {
			s.logger.Info(ctx, "legacy favorites layout migrated")
		}
		return err
	}); err != nil {
		s.logger.Warn(ctx, "legacy migration skipped", "error", err)
	}

	reg := registry.New(kv.NewSQLiteRepository(s.db))
	snapshot, err := reg.CurrentUser(ctx)
	if errors.Is(err, registry.ErrCorrupt) {
		s.logger.Warn(ctx, "stored session ignored", "error", err)
		return nil
	}
	if err != nil {
		s.logger.Error(ctx, "stored session unreadable", "error", err)
		return fmt.Errorf("restore session: %w", err)
	}
	if snapshot == nil {
		s.logger.Debug(ctx, "no stored session")
		return nil
	}

	snapshot.Favorites = models.DedupeByCode(snapshot.Favorites)
	s.current = snapshot
	s.logger.Info(ctx, "session restored", "user", *snapshot)
	return nil
}

// StartRestore runs Restore in the background. The returned channel yields
// its result once and is then closed.
func (s *Session) StartRestore(ctx context.Context) <-chan error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.Restore(ctx)
	}()
	return done
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Register creates an account with no favorites and signs it in. Existing
// per-account favorites stored under the same name are not merged in.
func (s *Session) Register(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidInput
	}

	sealed, err := s.verifier.Seal(password)
	if err != nil {
		return nil, fmt.Errorf("seal password: %w", err)
	}
	user := models.User{Username: username, Password: sealed, Favorites: []models.Country{}}

	s.mu.Lock()
	defer s.unlockAndNotify()

	err = s.withRegistry(ctx, func(ctx context.Context, reg *registry.Registry) error {
		users, err := reg.Users(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Username == username {
				return ErrDuplicateUsername
			}
		}
		if err := reg.SaveUsers(ctx, append(users, user)); err != nil {
			return err
		}
		return reg.SaveCurrentUser(ctx, user)
	})
	if errors.Is(err, ErrDuplicateUsername) {
		s.logger.Info(ctx, "registration rejected", "username", username, "reason", err)
		return nil, err
	}
	if err != nil {
		s.logger.Error(ctx, "registration not saved", "username", username, "error", err)
		return nil, persistenceError(err)
	}

	s.current = &user
	s.logger.Info(ctx, "user registered", "username", username)

	out := user.Clone()
	return &out, nil
}

// Login signs in the account whose stored credentials match and loads its
// per-account favorites. On failure the session is left as it was.
func (s *Session) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.unlockAndNotify()

	var user models.User
	err := s.withRegistry(ctx, func(ctx context.Context, reg *registry.Registry) error {
		account, err := reg.FindUser(ctx, username)
		if err != nil {
			return err
		}
		if account == nil || !s.verifier.Verify(account.Password, password) {
			return ErrInvalidCredentials
		}

		favorites, _, err := reg.FavoritesOf(ctx, username)
		if err != nil {
			return err
		}

		user = models.User{
			Username:  account.Username,
			Password:  account.Password,
			Favorites: models.DedupeByCode(favorites),
		}
		if err := reg.SaveCurrentUser(ctx, user); err != nil {
			return err
		}
		// Keep the account's entry equal to the snapshot.
		if len(user.Favorites) != len(favorites) {
			return reg.SaveFavoritesOf(ctx, username, user.Favorites)
		}
		return nil
	})
	if errors.Is(err, ErrInvalidCredentials) {
		s.logger.Info(ctx, "login rejected", "username", username)
		return nil, err
	}
	if err != nil {
		s.logger.Error(ctx, "login not saved", "username", username, "error", err)
		return nil, persistenceError(err)
	}

	s.current = &user
	s.logger.Info(ctx, "user logged in", "user", user)

	out := user.Clone()
	return &out, nil
}

// Logout drops the session snapshot. Accounts and their favorites stay.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.unlockAndNotify()

	if err := s.withRegistry(ctx, func(ctx context.Context, reg *registry.Registry) error {
		return reg.ClearCurrentUser(ctx)
	}); err != nil {
		s.logger.Error(ctx, "logout not saved", "error", err)
		return persistenceError(err)
	}

	if s.current != nil {
		s.logger.Info(ctx, "user logged out", "username", s.current.Username)
	}
	s.current = nil
	return nil
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// CurrentUser returns a copy of the signed-in account.
func (s *Session) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.User{}, false
	}
	return s.current.Clone(), true
}

// Favorites returns a copy of the current favorites, nil when anonymous.
func (s *Session) Favorites() []models.Country {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return models.CloneCountries(s.current.Favorites)
}

func (s *Session) IsFavorite(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && models.ContainsCode(s.current.Favorites, code)
}

// AddFavorite appends country to the current favorites. Adding a code that
// is already present succeeds without writing anything.
func (s *Session) AddFavorite(ctx context.Context, country models.Country) error {
	if country.Code == "" {
		return ErrInvalidCountry
	}

	s.mu.Lock()
	defer s.unlockAndNotify()

	if s.current == nil {
		return ErrNotAuthenticated
	}
	if models.ContainsCode(s.current.Favorites, country.Code) {
		return nil
	}

	next := s.current.Clone()
	next.Favorites = append(next.Favorites, models.CloneCountries([]models.Country{country})...)

	if err := s.saveFavoritesLocked(ctx, next); err != nil {
		return err
	}
	s.logger.Info(ctx, "favorite added", "username", next.Username, "code", country.Code)
	return nil
}

// RemoveFavorite drops the country with code from the current favorites.
// Removing an absent code succeeds without writing anything.
func (s *Session) RemoveFavorite(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.unlockAndNotify()

	if s.current == nil {
		return ErrNotAuthenticated
	}
	if !models.ContainsCode(s.current.Favorites, code) {
		return nil
	}

	next := s.current.Clone()
	next.Favorites = models.WithoutCode(next.Favorites, code)

	if err := s.saveFavoritesLocked(ctx, next); err != nil {
		return err
	}
	s.logger.Info(ctx, "favorite removed", "username", next.Username, "code", code)
	return nil
}

// saveFavoritesLocked writes the snapshot, then the per-account list, in one
// transaction, and adopts next on success.
func (s *Session) saveFavoritesLocked(ctx context.Context, next models.User) error {
	err := s.withRegistry(ctx, func(ctx context.Context, reg *registry.Registry) error {
		if err := reg.SaveCurrentUser(ctx, next); err != nil {
			return err
		}
		return reg.SaveFavoritesOf(ctx, next.Username, next.Favorites)
	})
	if err != nil {
		s.logger.Error(ctx, "favorites not saved", "username", next.Username, "error", err)
		return persistenceError(err)
	}
	s.current = &next
	return nil
}

// Subscribe registers fn to receive a copy of the current user (nil when
// anonymous) after every session operation. Call cancel to stop.
func (s *Session) Subscribe(fn func(*models.User)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
