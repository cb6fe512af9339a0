// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Credentials is the admin login form payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the login form fields.
func (c *Credentials) Validate() error {
	return validateStruct(c)
}

// SessionUser is the identity returned by the auth "me" endpoint.
type SessionUser struct {
	ID          string         `json:"id"`
	Email       string         `json:"email,omitempty"`
	DisplayName string         `json:"displayName,omitempty"`
	PhotoURL    string         `json:"photoURL,omitempty"`
	Profile     map[string]any `json:"profile,omitempty"`
}

// Session wraps the optional user of the auth "me" response. A nil User
// means no active session.
type Session struct {
	User *SessionUser `json:"user,omitempty"`
}
