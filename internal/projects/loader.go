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

package projects

import (
	"context"
	"errors"
	"time"

	"github.com/cloud-exit/tokensim/internal/kvstore"
	"go.uber.org/zap"
)

const kvListingKey = "projects:listing"

// Cache keeps the last good database listing in the kvstore.
type Cache struct {
	store *kvstore.Store
	ttl   time.Duration
}

// NewCache returns nil when store is nil; a nil *Cache is a no-op.
func NewCache(store *kvstore.Store, ttl time.Duration) *Cache {
	if store == nil {
		return nil
	}
	return &Cache{store: store, ttl: ttl}
}

func (c *Cache) Put(props []Property) error {
	if c == nil {
		return nil
	}
	return c.store.SetJSON(kvListingKey, props, c.ttl)
}

// Get returns kvstore.ErrNotFound when nothing is cached or the entry expired.
func (c *Cache) Get() ([]Property, error) {
	if c == nil {
		return nil, kvstore.ErrNotFound
	}
	var props []Property
	if err := c.store.GetJSON(kvListingKey, &props); err != nil {
		return nil, err
	}
	return props, nil
}

func (c *Cache) Invalidate() error {
	if c == nil {
		return nil
	}
	err := c.store.Delete([]byte(kvListingKey))
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	return err
}

// Origin says where a listing came from.
type Origin string

const (
	OriginDatabase Origin = "database"
	OriginCache    Origin = "cache"
	OriginFixtures Origin = "fixtures"
)

// Loader fetches the listing once. It never returns an error: failures
// degrade to the cache and then to the built-in fixtures.
type Loader struct {
	Source  Source // may be nil when no DSN is configured
	Cache   *Cache
	Logger  *zap.Logger
	Timeout time.Duration
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// Load returns the listing and where it came from.
func (l *Loader) Load(ctx context.Context) ([]Property, Origin) {
	log := l.logger()
	dropped := func(p Property, err error) {
		log.Debug("dropping invalid property", zap.String("id", p.ID), zap.Error(err))
	}

	if l.Source != nil {
		qctx := ctx
		if l.Timeout > 0 {
			var cancel context.CancelFunc
			qctx, cancel = context.WithTimeout(ctx, l.Timeout)
			defer cancel()
		}
		rows, err := l.Source.List(qctx)
		if err == nil {
			props := clean(rows, dropped)
			if err := l.Cache.Put(props); err != nil {
				log.Debug("caching listing failed", zap.Error(err))
			}
			log.Debug("listing loaded", zap.String("origin", string(OriginDatabase)), zap.Int("count", len(props)))
			return props, OriginDatabase
		}
		log.Debug("database listing failed", zap.Error(err))
	}

	if cached, err := l.Cache.Get(); err == nil {
		log.Debug("listing loaded", zap.String("origin", string(OriginCache)), zap.Int("count", len(cached)))
		return clean(cached, dropped), OriginCache
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		log.Debug("reading cached listing failed", zap.Error(err))
	}

	props, err := Fixtures()
	if err != nil {
		log.Debug("fixtures unreadable", zap.Error(err))
		return nil, OriginFixtures
	}
	return props, OriginFixtures
}
