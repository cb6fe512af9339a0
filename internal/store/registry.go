// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"github.com/daewazone/admin-go/internal/client"
	"github.com/daewazone/admin-go/internal/model"
)

// Registry bundles the cached stores for all six resource kinds around
// one shared Store and one API session. Page code takes the Registry by
// injection; there is no package-level singleton.
type Registry struct {
	Store *Store

	Categories *Resource[model.Category, *model.CreateCategoryDTO, *model.UpdateCategoryDTO]
	Contents   *ContentStore
	Speakers   *Resource[model.Speaker, *model.CreateSpeakerDTO, *model.UpdateSpeakerDTO]
	Courses    *Resource[model.Course, *model.CreateCourseDTO, *model.UpdateCourseDTO]
	Lessons    *LessonStore
	Users      *Resource[model.User, *model.CreateUserDTO, *model.UpdateUserDTO]
}

// NewRegistry wires every resource store to one API client and one
// shared cache Store.
func NewRegistry(c *client.Client, s *Store) *Registry {
	return &Registry{
		Store:      s,
		Categories: NewResource(s, client.Categories(c)),
		Contents:   NewContentStore(s, client.Contents(c)),
		Speakers:   NewResource(s, client.Speakers(c)),
		Courses:    NewResource(s, client.Courses(c)),
		Lessons:    NewLessonStore(s, client.Lessons(c)),
		Users:      NewResource(s, client.Users(c)),
	}
}
