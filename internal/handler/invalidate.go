// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/daewazone/admin-go/internal/model"
	"github.com/daewazone/admin-go/internal/store"
)

// writeObserver captures the status of a proxied response.
type writeObserver struct {
	http.ResponseWriter
	status int
}

func (o *writeObserver) WriteHeader(code int) {
	o.status = code
	o.ResponseWriter.WriteHeader(code)
}

// InvalidateOnWrite returns middleware that clears the cached reads
// of a resource kind after a successful proxied write to it. Lesson
// writes also clear courses, whose listings embed lesson data.
func InvalidateOnWrite(s *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			obs := &writeObserver{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(obs, r)

			if obs.status >= 300 {
				return
			}
			kind, ok := kindFromPath(r.URL.Path)
			if !ok {
				return
			}

			s.Invalidate(r.Context(), kind)
			if kind == model.KindLesson {
				s.Invalidate(r.Context(), model.KindCourse)
			}
		})
	}
}

// kindFromPath extracts the resource kind from an API path like
// /api/v1/course-lesson/{id}.
func kindFromPath(p string) (model.Kind, bool) {
	rest, ok := strings.CutPrefix(p, "/api/v1/")
	if !ok {
		return "", false
	}
	seg, _, _ := strings.Cut(rest, "/")

	for _, k := range model.Kinds {
		if seg == string(k) {
			return k, true
		}
	}
	return "", false
}
