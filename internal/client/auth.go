// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"

	"github.com/daewazone/admin-go/internal/model"
)

// Auth endpoint paths.
const (
	authLoginPath    = "/api/v1/auth/admin-login"
	authLogoutPath   = "/api/v1/auth/logout"
	authMePath       = "/api/v1/auth/me"
	authRegisterPath = "/api/v1/auth/register"
)

// AuthClient talks to the auth endpoints. The login response sets the
// access token cookie in the shared Client's jar, so every Resource bound
// to the same Client is authenticated afterwards.
type AuthClient struct {
	c *Client
}

// NewAuthClient binds the auth endpoints to a shared Client.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// Login authenticates the admin session. On success the server sets the
// access_token cookie; this client does not interpret the token.
func (a *AuthClient) Login(ctx context.Context, creds model.Credentials) error {
	if err := creds.Validate(); err != nil {
		return validationError(err)
	}

	resp, err := a.c.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(authLoginPath)
	if err != nil {
		return transportError("Login failed", err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), resp.Body(), "Invalid email or password")
	}
	return nil
}

// Logout ends the server session and clears local cookies regardless of
// the server outcome.
func (a *AuthClient) Logout(ctx context.Context) error {
	resp, err := a.c.R().SetContext(ctx).Post(authLogoutPath)

	// Local cookies go away even when the server call failed.
	a.c.ClearCookies()

	if err != nil {
		return transportError("Logout failed", err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), resp.Body(), "Logout failed")
	}
	return nil
}

// Me returns the current session identity.
func (a *AuthClient) Me(ctx context.Context) (*model.Session, error) {
	var out model.Session
	resp, err := a.c.R().SetContext(ctx).SetResult(&out).Get(authMePath)
	if err != nil {
		return nil, transportError("Failed to load session", err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), resp.Body(), "Failed to load session")
	}
	return &out, nil
}

// Register creates an account with email and password.
func (a *AuthClient) Register(ctx context.Context, email, password string) error {
	creds := model.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return validationError(err)
	}

	resp, err := a.c.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(authRegisterPath)
	if err != nil {
		return transportError("Registration failed", err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), resp.Body(), "Registration failed")
	}
	return nil
}
