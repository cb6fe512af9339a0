// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Course is an ordered collection of lessons by one speaker in one
// category. LessonsCount is derived server-side; the Lessons slice is
// embedded in the course detail response only.
type Course struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	SpeakerID    string      `json:"speakerId,omitempty"`
	CategoryID   string      `json:"categoryId,omitempty"`
	Thumbnail    string      `json:"thumbnail,omitempty"`
	Status       string      `json:"status"`
	IsPublished  bool        `json:"isPublished,omitempty"`
	LessonsCount int         `json:"lessonsCount,omitempty"`
	Speaker      *ContentRef `json:"speaker,omitempty"`
	Category     *ContentRef `json:"category,omitempty"`
	Lessons      []Lesson    `json:"lessons,omitempty"`
	CreatedAt    time.Time   `json:"createdAt,omitzero"`
	UpdatedAt    time.Time   `json:"updatedAt,omitzero"`
}

// CreateCourseDTO is the payload for creating a course. The thumbnail is
// optional; when present the request is multipart.
type CreateCourseDTO struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description,omitempty" validate:"max=2000"`
	SpeakerID   string  `json:"speakerId" validate:"required"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=Published Draft Archived"`
	Thumbnail   *Upload `json:"-"`
}

// Validate checks the DTO against the course field constraints.
func (d *CreateCourseDTO) Validate() error {
	return validateStruct(d)
}

// File returns the thumbnail upload, nil when none was attached.
func (d *CreateCourseDTO) File() (string, *Upload) {
	return "thumbnail", d.Thumbnail
}

// UpdateCourseDTO is the partial payload for updating a course. Course
// updates are JSON unless a new thumbnail is uploaded.
type UpdateCourseDTO struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	SpeakerID   *string `json:"speakerId,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=Published Draft Archived"`
	IsPublished *bool   `json:"isPublished,omitempty"`
	Thumbnail   *Upload `json:"-"`
}

// Validate checks the DTO against the course field constraints.
func (d *UpdateCourseDTO) Validate() error {
	return validateStruct(d)
}

// File returns the replacement thumbnail, nil when none was attached.
func (d *UpdateCourseDTO) File() (string, *Upload) {
	return "thumbnail", d.Thumbnail
}
