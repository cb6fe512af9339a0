// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// User roles. RoleModerator is legacy: accepted when read, no longer
// assignable from the dashboard.
const (
	RoleAdmin     = "Admin"
	RoleUser      = "User"
	RoleModerator = "Moderator"
)

// User statuses.
const (
	UserStatusActive    = "Active"
	UserStatusInactive  = "Inactive"
	UserStatusSuspended = "Suspended"
)

// User is a platform account managed from the dashboard. The password is
// write-only and never round-trips through this type.
type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Phone     string    `json:"phone,omitempty"`
	Joined    string    `json:"joined,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserDTO is the payload for creating a user account.
type CreateUserDTO struct {
	FullName string `json:"fullname" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=Admin User"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty" validate:"max=30"`
}

// Validate checks the DTO against the user field constraints.
func (d *CreateUserDTO) Validate() error {
	return validateStruct(d)
}

// UpdateUserDTO is the partial payload for updating a user. A nil
// Password leaves the stored password unchanged.
type UpdateUserDTO struct {
	FullName *string `json:"fullname,omitempty" validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=Admin User Moderator"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive Suspended"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// Validate checks the DTO against the user field constraints.
func (d *UpdateUserDTO) Validate() error {
	return validateStruct(d)
}
