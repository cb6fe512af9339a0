// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Speaker statuses.
const (
	SpeakerStatusActive   = "Active"
	SpeakerStatusInactive = "Inactive"
)

// Speaker is a lecturer whose recordings are published on the platform.
// LectureCount and TotalViews are derived server-side.
type Speaker struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio,omitempty"`
	Address      string    `json:"address,omitempty"`
	LectureCount int       `json:"lectureCount,omitempty"`
	TotalViews   string    `json:"totalViews,omitempty"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// CreateSpeakerDTO is the payload for creating a speaker.
type CreateSpeakerDTO struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Bio     string `json:"bio,omitempty" validate:"max=1000"`
	Address string `json:"address,omitempty" validate:"max=200"`
}

// Validate checks the DTO against the speaker field constraints.
func (d *CreateSpeakerDTO) Validate() error {
	return validateStruct(d)
}

// UpdateSpeakerDTO is the partial payload for updating a speaker.
type UpdateSpeakerDTO struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Bio     *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=200"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
}

// Validate checks the DTO against the speaker field constraints.
func (d *UpdateSpeakerDTO) Validate() error {
	return validateStruct(d)
}
