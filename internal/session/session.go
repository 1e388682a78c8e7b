// Package session keeps the signed-in state between CLI invocations:
// the session cookie, a cached copy of the user profile, and the gate
// that mutating operations check before running.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"testertalk/internal/api"
)

// Store reads and writes the session state files under one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// CookiePath returns the cookie jar file location.
func (s *Store) CookiePath() string {
	return filepath.Join(s.dir, "cookies.json")
}

func (s *Store) profilePath() string {
	return filepath.Join(s.dir, "profile.json")
}

// SaveProfile caches the signed-in user's profile.
func (s *Store) SaveProfile(user *api.User) error {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(s.profilePath(), data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// LoadProfile returns the cached profile, or nil when none is cached.
func (s *Store) LoadProfile() (*api.User, error) {
	data, err := os.ReadFile(s.profilePath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var user api.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &user, nil
}

// ClearProfile removes the cached profile.
func (s *Store) ClearProfile() error {
	if err := os.Remove(s.profilePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove profile: %w", err)
	}
	return nil
}

// Gate answers "who is signed in?" before mutating operations run.
// Check never returns an error: any failure to confirm the session
// reads as signed out, so callers only branch on the bool.
type Gate struct {
	client *api.Client
	store  *Store
	logger *slog.Logger

	mu   sync.Mutex
	user *api.User
}

// NewGate returns a gate backed by the given client and store.
func NewGate(client *api.Client, store *Store, logger *slog.Logger) *Gate {
	return &Gate{client: client, store: store, logger: logger}
}

// Check asks the server who the session belongs to. On success the
// profile cache is refreshed; on any failure the cached session state
// is cleared and (nil, false) is returned.
func (g *Gate) Check(ctx context.Context) (*api.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	user, err := g.client.Auth().Me(ctx)
	if err != nil {
		if !api.IsUnauthorized(err) {
			g.logger.Warn("auth check failed", "error", err)
		}
		g.user = nil
		if err := g.store.ClearProfile(); err != nil {
			g.logger.Warn("failed to clear profile cache", "error", err)
		}
		return nil, false
	}

	g.user = user
	if err := g.store.SaveProfile(user); err != nil {
		g.logger.Warn("failed to cache profile", "error", err)
	}
	return user, true
}

// Require returns the signed-in user or an error telling the caller to
// sign in. Mutating commands call this before doing anything.
func (g *Gate) Require(ctx context.Context) (*api.User, error) {
	user, ok := g.Check(ctx)
	if !ok {
		return nil, fmt.Errorf("not signed in: run `testertalk login` first")
	}
	return user, nil
}

// Cached returns the last profile confirmed by Check, or the one
// persisted by a previous invocation. It never talks to the server;
// use it only for display defaults, not authorization.
func (g *Gate) Cached() *api.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user != nil {
		return g.user
	}
	user, err := g.store.LoadProfile()
	if err != nil {
		g.logger.Warn("failed to load cached profile", "error", err)
		return nil
	}
	return user
}
