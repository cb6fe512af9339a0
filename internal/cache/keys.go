// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"net/url"

	"github.com/daewazone/admin-go/internal/model"
)

// Cache key schema: every key lives under its resource kind's root, with
// list and detail scopes as distinct namespaces:
//
//	{kind}:list:{serialized params}
//	{kind}:detail:{id}
//
// Unparameterized list reads use the "all" params token.

const (
	scopeList   = ":list:"
	scopeDetail = ":detail:"

	// allParams is the params token for unfiltered list reads.
	allParams = "all"
)

// KindPrefix returns the key prefix covering every entry of a kind.
func KindPrefix(kind model.Kind) string {
	return string(kind) + ":"
}

// ListPrefix returns the key prefix covering every list entry of a kind.
func ListPrefix(kind model.Kind) string {
	return string(kind) + scopeList
}

// ListKey returns the cache key for a list read. The params values are
// serialized in sorted order so equivalent queries share one key.
func ListKey(kind model.Kind, params url.Values) string {
	serialized := allParams
	if len(params) > 0 {
		serialized = params.Encode()
	}
	return string(kind) + scopeList + serialized
}

// DetailKey returns the cache key for a single entity read.
func DetailKey(kind model.Kind, id string) string {
	return string(kind) + scopeDetail + id
}
