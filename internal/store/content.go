// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/daewazone/admin-go/internal/cache"
	"github.com/daewazone/admin-go/internal/client"
	"github.com/daewazone/admin-go/internal/model"
)

// ContentStore is the lecture store. On top of the generic resource
// operations it caches paged, searchable listings per parameter set.
type ContentStore struct {
	*Resource[model.Content, *model.CreateContentDTO, *model.UpdateContentDTO]
}

// NewContentStore binds the content API client to the shared Store.
func NewContentStore(s *Store, api *client.Resource[model.Content, *model.CreateContentDTO, *model.UpdateContentDTO]) *ContentStore {
	return &ContentStore{Resource: NewResource(s, api)}
}

// ListPage returns one cached page of lectures. Each distinct parameter
// set gets its own cache key, and all of them are evicted together on
// any content mutation.
func (c *ContentStore) ListPage(ctx context.Context, params client.ListParams) (*client.Page[model.Content], error) {
	key := cache.ListKey(c.Kind(), params.Values())
	var out client.Page[model.Content]
	err := c.store.read(ctx, key, &out, func(ctx context.Context) (any, error) {
		return c.api.ListPage(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
