// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/daewazone/admin-go/internal/client"
	"github.com/daewazone/admin-go/internal/model"
)

// LessonStore is the course-lesson store. Lessons are nested under
// courses and the course detail response embeds its lessons, so every
// lesson mutation also invalidates the owning course's detail entry and
// the course listings.
type LessonStore struct {
	store *Store
	api   *client.Resource[model.Lesson, *model.CreateLessonDTO, *model.UpdateLessonDTO]
}

// NewLessonStore binds the lesson API client to the shared Store.
func NewLessonStore(s *Store, api *client.Resource[model.Lesson, *model.CreateLessonDTO, *model.UpdateLessonDTO]) *LessonStore {
	return &LessonStore{store: s, api: api}
}

// Kind returns the lesson resource kind.
func (l *LessonStore) Kind() model.Kind {
	return l.api.Kind()
}

// Create adds a lesson to its course.
func (l *LessonStore) Create(ctx context.Context, dto *model.CreateLessonDTO) (*model.Lesson, error) {
	created, err := l.api.Create(ctx, dto)
	if err != nil {
		return nil, err
	}
	l.invalidate(ctx, created.CourseID)
	return created, nil
}

// Update submits a partial lesson update.
func (l *LessonStore) Update(ctx context.Context, id string, dto *model.UpdateLessonDTO) (*model.Lesson, error) {
	updated, err := l.api.Update(ctx, id, dto)
	if err != nil {
		return nil, err
	}
	l.invalidate(ctx, updated.CourseID)
	return updated, nil
}

// Delete removes a lesson. The caller supplies the owning course id
// because the delete response carries no body to read it from.
func (l *LessonStore) Delete(ctx context.Context, id, courseID string) error {
	if err := l.api.Delete(ctx, id); err != nil {
		return err
	}
	l.invalidate(ctx, courseID)
	return nil
}

// invalidate evicts the lesson kind plus the owning course's detail and
// the course listings, which embed lesson data.
func (l *LessonStore) invalidate(ctx context.Context, courseID string) {
	l.store.Invalidate(ctx, l.Kind())
	l.store.InvalidateLists(ctx, model.KindCourse)
	if courseID != "" {
		l.store.InvalidateDetail(ctx, model.KindCourse, courseID)
	}
}
