// Package session keeps the one record that says who is using the app on this
// device, mirrored to the device store so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	logrus "github.com/sirupsen/logrus"

	"airide/internal/models"
	"airide/internal/storage"
)

// Key is the fixed storage key of the session record.
const Key = "session"

// Store holds the current session. Create one per process with New, call
// Initialize once, and hand it to whatever needs it.
type Store struct {
	mu      sync.RWMutex
	kv      storage.KV
	current models.Session
}

func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Initialize restores the persisted record. A missing or unreadable record
// leaves the session empty.
func (s *Store) Initialize(ctx context.Context) {
	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logrus.WithError(err).Warn("session: could not read persisted record")
		}
		return
	}

	var restored models.Session
	if err := json.Unmarshal(raw, &restored); err != nil {
		logrus.WithError(err).Warn("session: ignoring malformed persisted record")
		return
	}

	s.mu.Lock()
	s.current = restored
	s.mu.Unlock()
}

// SetUser makes u the authenticated user.
func (s *Store) SetUser(ctx context.Context, u models.User) {
	s.update(ctx, func(cur *models.Session) bool {
		cur.User = clone(models.Session{User: &u}).User
		return true
	})
}

// SetDriver makes d the registered driver of this device.
func (s *Store) SetDriver(ctx context.Context, d models.Driver) {
	s.update(ctx, func(cur *models.Session) bool {
		cur.Driver = clone(models.Session{Driver: &d}).Driver
		return true
	})
}

// SetToken stores the API token issued at sign-in.
func (s *Store) SetToken(ctx context.Context, token string) {
	s.update(ctx, func(cur *models.Session) bool {
		cur.Token = token
		return true
	})
}

// SetLanguage changes the language of the current user. Without a user it
// does nothing, not even a write.
func (s *Store) SetLanguage(ctx context.Context, code string) {
	s.update(ctx, func(cur *models.Session) bool {
		if cur.User == nil {
			return false
		}
		u := *cur.User
		u.Language = code
		cur.User = clone(models.Session{User: &u}).User
		return true
	})
}

// Clear signs out: the record is dropped from memory and from the device.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = models.Session{}
	if err := s.kv.Delete(ctx, Key); err != nil {
		logrus.WithError(err).Warn("session: could not remove persisted record")
	}
}

// Snapshot returns a copy of the whole session.
func (s *Store) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.current)
}

// User returns the signed-in user, or nil.
func (s *Store) User() *models.User {
	return s.Snapshot().User
}

// Driver returns the registered driver, or nil.
func (s *Store) Driver() *models.Driver {
	return s.Snapshot().Driver
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.User != nil
}

func (s *Store) IsRegistered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Driver != nil
}

// update applies fn under the lock and persists the result when fn reports a
// change. Persist failures are logged; the in-memory value stands.
func (s *Store) update(ctx context.Context, fn func(cur *models.Session) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := clone(s.current)
	if !fn(&next) {
		return
	}
	s.current = next

	raw, err := json.Marshal(next)
	if err != nil {
		logrus.WithError(err).Error("session: could not encode record")
		return
	}
	if err := s.kv.Put(ctx, Key, raw); err != nil {
		logrus.WithError(err).Warn("session: could not persist record")
	}
}

func clone(s models.Session) models.Session {
	out := models.Session{Token: s.Token}
	if s.User != nil {
		u := *s.User
		if u.Profile != nil {
			p := *u.Profile
			u.Profile = &p
		}
		out.User = &u
	}
	if s.Driver != nil {
		d := *s.Driver
		d.Vehicle.Color = clonePtr(d.Vehicle.Color)
		d.Vehicle.Year = clonePtr(d.Vehicle.Year)
		if d.LatestLocation != nil {
			l := *d.LatestLocation
			l.Speed = clonePtr(l.Speed)
			l.Heading = clonePtr(l.Heading)
			d.LatestLocation = &l
		}
		out.Driver = &d
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
