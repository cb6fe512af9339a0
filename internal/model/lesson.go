// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Lesson is one audio recording inside a course. OrderIndex is the 1-based
// ordering key within the owning course; ties are broken by index value.
type Lesson struct {
	ID          string    `json:"id"`
	LessonTitle string    `json:"lessonTitle,omitempty"`
	OrderIndex  int       `json:"orderIndex"`
	CourseID    string    `json:"courseId"`
	AudioURL    string    `json:"audioUrl,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// CreateLessonDTO is the payload for adding a lesson to a course. The
// audio upload is mandatory, so lesson creation is always multipart.
type CreateLessonDTO struct {
	CourseID    string  `json:"courseId" validate:"required"`
	LessonTitle string  `json:"lessonTitle,omitempty" validate:"max=200"`
	OrderIndex  int     `json:"orderIndex" validate:"required,gte=1"`
	AudioFile   *Upload `json:"-" validate:"required"`
}

// Validate checks the DTO against the lesson field constraints.
func (d *CreateLessonDTO) Validate() error {
	return validateStruct(d)
}

// File returns the audio upload for multipart encoding.
func (d *CreateLessonDTO) File() (string, *Upload) {
	return "file", d.AudioFile
}

// UpdateLessonDTO is the partial payload for updating a lesson. Like the
// upstream endpoint, lesson updates are always multipart.
type UpdateLessonDTO struct {
	LessonTitle *string `json:"lessonTitle,omitempty" validate:"omitempty,max=200"`
	OrderIndex  *int    `json:"orderIndex,omitempty" validate:"omitempty,gte=1"`
	AudioFile   *Upload `json:"-"`
}

// Validate checks the DTO against the lesson field constraints.
func (d *UpdateLessonDTO) Validate() error {
	return validateStruct(d)
}

// File returns the replacement audio upload, nil when none was attached.
func (d *UpdateLessonDTO) File() (string, *Upload) {
	return "file", d.AudioFile
}
