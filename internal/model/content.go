// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Publication statuses shared by Content and Course.
const (
	StatusPublished = "Published"
	StatusDraft     = "Draft"
	StatusArchived  = "Archived"
)

// ContentRef is the embedded name-only view of a related entity returned
// inside content listings.
type ContentRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Content is a single lecture recording. It must reference an existing
// speaker and category; the audio asset is required at creation and
// preserved on update when no replacement is uploaded. Views is a
// server-derived counter.
type Content struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	SpeakerID   string      `json:"speakerId"`
	CategoryID  string      `json:"categoryId"`
	Description string      `json:"description,omitempty"`
	AudioURL    string      `json:"audioUrl"`
	Duration    string      `json:"duration,omitempty"`
	Views       int         `json:"views,omitempty"`
	Status      string      `json:"status"`
	IsFeatured  bool        `json:"isFeatured,omitempty"`
	Speaker     *ContentRef `json:"speaker,omitempty"`
	Category    *ContentRef `json:"category,omitempty"`
	CreatedAt   time.Time   `json:"createdAt,omitzero"`
	UpdatedAt   time.Time   `json:"updatedAt,omitzero"`
}

// IsPublished returns true if the content is visible to end users.
func (c *Content) IsPublished() bool {
	return c.Status == StatusPublished
}

// CreateContentDTO is the payload for creating a lecture. The audio upload
// is mandatory, so content creation is always multipart.
type CreateContentDTO struct {
	Title       string  `json:"title" validate:"required,max=200"`
	SpeakerID   string  `json:"speakerId" validate:"required"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	Description string  `json:"description,omitempty" validate:"max=2000"`
	Duration    string  `json:"duration,omitempty" validate:"omitempty,duration"`
	AudioFile   *Upload `json:"-" validate:"required"`
}

// Validate checks the DTO against the content field constraints.
func (d *CreateContentDTO) Validate() error {
	return validateStruct(d)
}

// File returns the audio upload for multipart encoding.
func (d *CreateContentDTO) File() (string, *Upload) {
	return "file", d.AudioFile
}

// UpdateContentDTO is the partial payload for updating a lecture. The
// request is multipart only when AudioFile is set; omitting it preserves
// the prior asset.
type UpdateContentDTO struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	SpeakerID   *string `json:"speakerId,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Duration    *string `json:"duration,omitempty" validate:"omitempty,duration"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=Published Draft Archived"`
	IsFeatured  *bool   `json:"isFeatured,omitempty"`
	AudioFile   *Upload `json:"-"`
}

// Validate checks the DTO against the content field constraints.
func (d *UpdateContentDTO) Validate() error {
	return validateStruct(d)
}

// File returns the replacement audio upload, nil when none was attached.
func (d *UpdateContentDTO) File() (string, *Upload) {
	return "file", d.AudioFile
}
