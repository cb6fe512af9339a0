// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/daewazone/admin-go/internal/client"
	"github.com/daewazone/admin-go/internal/store"
)

// APIHandler serves cached API reads from the resource registry.
// Writes are not handled here; they are proxied to the API and clear
// the cache on the way back.
type APIHandler struct {
	registry *store.Registry
}

// NewAPIHandler creates an API read handler over the registry.
func NewAPIHandler(reg *store.Registry) *APIHandler {
	return &APIHandler{registry: reg}
}

// Routes registers the cached GET routes on the router.
func (h *APIHandler) Routes(r chi.Router) {
	r.Get("/category", listHandler(h.registry.Categories.List))
	r.Get("/category/{id}", getHandler(h.registry.Categories.Get))

	r.Get("/speaker", listHandler(h.registry.Speakers.List))
	r.Get("/speaker/{id}", getHandler(h.registry.Speakers.Get))

	r.Get("/course", listHandler(h.registry.Courses.List))
	r.Get("/course/{id}", getHandler(h.registry.Courses.Get))

	r.Get("/user", listHandler(h.registry.Users.List))
	r.Get("/user/{id}", getHandler(h.registry.Users.Get))

	r.Get("/content", h.listContent)
	r.Get("/content/{id}", getHandler(h.registry.Contents.Get))
}

// listContent serves the content listing, paged when any paging
// parameter is present.
func (h *APIHandler) listContent(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	if params.IsZero() {
		items, err := h.registry.Contents.List(r.Context())
		if err != nil {
			writeAPIError(w, err)
			return
		}
		writeJSON(w, items)
		return
	}

	page, err := h.registry.Contents.ListPage(r.Context(), params)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, page)
}

// listHandler adapts a registry list method to an http.HandlerFunc.
func listHandler[T any](list func(ctx context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			writeAPIError(w, err)
			return
		}
		writeJSON(w, items)
	}
}

// getHandler adapts a registry get method to an http.HandlerFunc.
func getHandler[T any](get func(ctx context.Context, id string) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeAPIError(w, err)
			return
		}
		writeJSON(w, item)
	}
}

func parseListParams(r *http.Request) client.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return client.ListParams{
		Search: q.Get("search"),
		Page:   page,
		Limit:  limit,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// writeAPIError maps a client error to the status and JSON shape the
// API answers with.
func writeAPIError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if client.IsNotFound(err) {
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}
