// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/daewazone/admin-go/internal/cache"
	"github.com/daewazone/admin-go/internal/client"
	"github.com/daewazone/admin-go/internal/model"
)

// Resource is the cached store for one resource kind. Reads go through
// the Store's stale-while-revalidate path; mutations pass straight to
// the API client and invalidate the kind's cache on success.
type Resource[T any, C client.Validatable, U client.Validatable] struct {
	store *Store
	api   *client.Resource[T, C, U]
}

// NewResource binds an API client to the shared Store.
func NewResource[T any, C client.Validatable, U client.Validatable](s *Store, api *client.Resource[T, C, U]) *Resource[T, C, U] {
	return &Resource[T, C, U]{store: s, api: api}
}

// Kind returns the resource kind this store serves.
func (r *Resource[T, C, U]) Kind() model.Kind {
	return r.api.Kind()
}

// List returns the cached collection, fetching when absent.
func (r *Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	key := cache.ListKey(r.Kind(), nil)
	var out []T
	err := r.store.read(ctx, key, &out, func(ctx context.Context) (any, error) {
		return r.api.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the cached entity, fetching when absent.
func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	key := cache.DetailKey(r.Kind(), id)
	var out T
	err := r.store.read(ctx, key, &out, func(ctx context.Context) (any, error) {
		return r.api.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create submits a new entity and invalidates the kind's cache.
func (r *Resource[T, C, U]) Create(ctx context.Context, dto C) (*T, error) {
	created, err := r.api.Create(ctx, dto)
	if err != nil {
		return nil, err
	}
	r.store.Invalidate(ctx, r.Kind())
	return created, nil
}

// Update submits a partial update and invalidates the kind's cache.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, dto U) (*T, error) {
	updated, err := r.api.Update(ctx, id, dto)
	if err != nil {
		return nil, err
	}
	r.store.Invalidate(ctx, r.Kind())
	return updated, nil
}

// Delete removes an entity and invalidates the kind's cache.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, id); err != nil {
		return err
	}
	r.store.Invalidate(ctx, r.Kind())
	return nil
}
