// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/daewazone/admin-go/internal/util"
)

// Category statuses.
const (
	CategoryStatusActive   = "Active"
	CategoryStatusInactive = "Inactive"
)

// Category groups lectures under a unique URL slug.
// LectureCount and TotalViews are derived server-side.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Color        string    `json:"color,omitempty"`
	LectureCount int       `json:"lectureCount,omitempty"`
	TotalViews   string    `json:"totalViews,omitempty"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// IsActive returns true if the category is active.
func (c *Category) IsActive() bool {
	return c.Status == CategoryStatusActive
}

// CreateCategoryDTO is the payload for creating a category.
// When Slug is empty it is generated from Name before validation.
type CreateCategoryDTO struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,slug"`
	Description string `json:"description,omitempty" validate:"max=500"`
	Color       string `json:"color,omitempty" validate:"max=30"`
}

// Normalize fills the slug from the name when it was not provided.
func (d *CreateCategoryDTO) Normalize() {
	if d.Slug == "" {
		d.Slug = util.Slugify(d.Name)
	}
}

// Validate checks the DTO against the category field constraints.
func (d *CreateCategoryDTO) Validate() error {
	d.Normalize()
	return validateStruct(d)
}

// UpdateCategoryDTO is the partial payload for updating a category.
// Nil fields are omitted from the request and left unchanged server-side.
type UpdateCategoryDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,slug"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=30"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
}

// Validate checks the DTO against the category field constraints.
func (d *UpdateCategoryDTO) Validate() error {
	return validateStruct(d)
}
