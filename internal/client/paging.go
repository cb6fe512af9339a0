// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"net/url"
	"strconv"
)

// ListParams carries the server-side search and pagination parameters
// supported by the content listing. The zero value lists everything.
type ListParams struct {
	Search string
	Page   int // 1-based
	Limit  int
}

// IsZero reports whether no parameter is set.
func (p ListParams) IsZero() bool {
	return p.Search == "" && p.Page == 0 && p.Limit == 0
}

// Values renders the parameters as a query string.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// Meta is the pagination envelope returned with paged listings.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Page is a paged listing result. Requesting a page beyond TotalPages
// yields an empty Data slice, not an error.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}
