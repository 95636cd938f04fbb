// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package session holds the explicit application context: created once at
// startup, passed to every command and torn down on exit.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cloud-exit/tokensim/internal/config"
	"github.com/cloud-exit/tokensim/internal/kvstore"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Profile is the local user shown in reports.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// String renders the profile for report headers.
func (p Profile) String() string {
	if p.Email == "" {
		return p.Name
	}
	return fmt.Sprintf("%s <%s>", p.Name, p.Email)
}

// Record is what the store keeps about a session.
type Record struct {
	ID        string    `json:"id"`
	Profile   Profile   `json:"profile"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
}

// Session is the per-run application context.
type Session struct {
	ID        uuid.UUID
	Profile   Profile
	Config    *config.Config
	Logger    *zap.Logger
	Store     *kvstore.Store // nil when the cache is disabled
	StartedAt time.Time

	previous *Record
	closed   bool
}

// KV keys

const kvSessionPrefix = "session:"

func kvSessionKey(id string) string { return kvSessionPrefix + id }

const kvLastSessionKey = "session:.last"

// Open creates the session. store may be nil.
func Open(cfg *config.Config, logger *zap.Logger, store *kvstore.Store) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("session: nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		ID:        uuid.New(),
		Profile:   profileFromConfig(cfg),
		Config:    cfg,
		Store:     store,
		StartedAt: time.Now().UTC(),
	}
	s.Logger = logger.With(zap.String("session", s.ID.String()))

	if store != nil {
		if prev, err := Last(store); err == nil {
			s.previous = prev
		}
		if err := s.save(time.Time{}); err != nil {
			return nil, err
		}
	}
	s.Logger.Debug("session opened", zap.String("profile", s.Profile.Name))
	return s, nil
}

func profileFromConfig(cfg *config.Config) Profile {
	name := strings.TrimSpace(cfg.Profile.Name)
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "guest"
	}
	return Profile{Name: name, Email: cfg.Profile.Email}
}

func (s *Session) save(ended time.Time) error {
	rec := Record{
		ID:        s.ID.String(),
		Profile:   s.Profile,
		StartedAt: s.StartedAt,
		EndedAt:   ended,
	}
	if err := s.Store.SetJSON(kvSessionKey(rec.ID), rec, 30*24*time.Hour); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if err := s.Store.SetJSON(kvLastSessionKey, rec, 0); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Previous returns the record of the run before this one, if any.
func (s *Session) Previous() *Record { return s.previous }

// Last returns the most recently opened session record.
func Last(store *kvstore.Store) (*Record, error) {
	var rec Record
	if err := store.GetJSON(kvLastSessionKey, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// History returns up to limit session records, newest first. A limit of
// zero or less returns all of them.
func History(store *kvstore.Store, limit int) ([]Record, error) {
	var out []Record
	err := store.Iterate([]byte(kvSessionPrefix), func(key, value []byte) error {
		if string(key) == kvLastSessionKey {
			return nil
		}
		var rec Record
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("decoding %s: %w", key, err)
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close records the end of the session, flushes the logger and closes the
// store. Calling it twice is harmless.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.Store != nil {
		if err := s.save(time.Now().UTC()); err != nil {
			errs = append(errs, err)
		}
		if err := s.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing store: %w", err))
		}
	}
	s.Logger.Debug("session closed")
	_ = s.Logger.Sync()
	return errors.Join(errs...)
}
