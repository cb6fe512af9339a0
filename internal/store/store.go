// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store coordinates the typed API clients with the cache layer.
// Reads are stale-while-revalidate: a cached value is served immediately
// and refreshed in the background once it passes the staleness window;
// concurrent reads of one key are coalesced into a single request.
// Mutations never touch the cache optimistically - a successful mutation
// evicts every key of the mutated kind, so the next read refetches
// server state.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/daewazone/admin-go/internal/cache"
	"github.com/daewazone/admin-go/internal/model"
)

const (
	defaultStaleAfter = 30 * time.Second
	defaultTTL        = time.Hour
)

// Options configures a Store.
type Options struct {
	// Backend is the cache backend. Defaults to an in-memory backend.
	Backend cache.Backend

	// StaleAfter is the age past which a cached value is served but
	// revalidated in the background (default 30s).
	StaleAfter time.Duration

	// TTL is the hard expiry for cached entries (default 1h).
	TTL time.Duration
}

// Store is the shared cache coordinator injected into every resource
// store. It owns the key schema, the staleness policy, and the
// invalidation API.
type Store struct {
	backend    cache.Backend
	group      singleflight.Group
	staleAfter time.Duration
	ttl        time.Duration
}

// New creates a Store with the given options.
func New(opts Options) *Store {
	backend := opts.Backend
	if backend == nil {
		backend = cache.NewMemory(cache.MemoryOptions{
			DefaultTTL:      defaultTTL,
			CleanupInterval: time.Minute,
		})
	}

	staleAfter := opts.StaleAfter
	if staleAfter == 0 {
		staleAfter = defaultStaleAfter
	}
	ttl := opts.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &Store{
		backend:    backend,
		staleAfter: staleAfter,
		ttl:        ttl,
	}
}

// Close releases the cache backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Stats returns backend statistics when the backend provides them.
func (s *Store) Stats() (cache.Stats, bool) {
	sp, ok := s.backend.(cache.StatsProvider)
	if !ok {
		return cache.Stats{}, false
	}
	return sp.Stats(), true
}

// Invalidate evicts every cached key of a resource kind, list and detail
// alike. The next read of any of them refetches from the server.
func (s *Store) Invalidate(ctx context.Context, kind model.Kind) {
	if err := s.backend.DeleteByPrefix(ctx, cache.KindPrefix(kind)); err != nil {
		slog.Warn("cache invalidation failed", "kind", kind, "error", err)
	}
}

// InvalidateLists evicts every cached list of a resource kind.
func (s *Store) InvalidateLists(ctx context.Context, kind model.Kind) {
	if err := s.backend.DeleteByPrefix(ctx, cache.ListPrefix(kind)); err != nil {
		slog.Warn("cache invalidation failed", "kind", kind, "scope", "list", "error", err)
	}
}

// InvalidateDetail evicts one cached entity.
func (s *Store) InvalidateDetail(ctx context.Context, kind model.Kind, id string) {
	if err := s.backend.Delete(ctx, cache.DetailKey(kind, id)); err != nil {
		slog.Warn("cache invalidation failed", "kind", kind, "id", id, "error", err)
	}
}

// entry is the cached envelope: the marshaled value plus the fetch time
// the staleness policy runs on.
type entry struct {
	Data      json.RawMessage `json:"data"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// read resolves a key into dst: cache hit fresh -> return it; cache hit
// stale -> return it and revalidate in the background; miss -> fetch
// synchronously through singleflight and populate the cache.
func (s *Store) read(ctx context.Context, key string, dst any, fetch func(context.Context) (any, error)) error {
	if raw, err := s.backend.Get(ctx, key); err == nil {
		var ent entry
		if err := json.Unmarshal(raw, &ent); err == nil {
			if time.Since(ent.FetchedAt) >= s.staleAfter {
				s.revalidate(ctx, key, fetch)
			}
			return json.Unmarshal(ent.Data, dst)
		}
		// Unreadable entry: drop it and fall through to a fetch.
		_ = s.backend.Delete(ctx, key)
	}

	raw, err, _ := s.group.Do(key, func() (any, error) {
		return s.fetchAndStore(ctx, key, fetch)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw.(json.RawMessage), dst)
}

// revalidate refreshes a stale key in the background. The singleflight
// group keeps concurrent revalidations of one key down to a single
// request; a failure leaves the stale value in place.
func (s *Store) revalidate(ctx context.Context, key string, fetch func(context.Context) (any, error)) {
	bg := context.WithoutCancel(ctx)
	go func() {
		_, err, _ := s.group.Do(key, func() (any, error) {
			return s.fetchAndStore(bg, key, fetch)
		})
		if err != nil {
			slog.Debug("background revalidation failed", "key", key, "error", err)
		}
	}()
}

// fetchAndStore performs the fetch and caches the marshaled result.
func (s *Store) fetchAndStore(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	val, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}

	ent, err := json.Marshal(entry{Data: data, FetchedAt: time.Now()})
	if err != nil {
		return nil, err
	}
	if err := s.backend.Set(ctx, key, ent, s.ttl); err != nil {
		// A failed cache write does not invalidate the fetched value.
		slog.Warn("cache write failed", "key", key, "error", err)
	}

	return json.RawMessage(data), nil
}
