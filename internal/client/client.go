// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client implements the typed REST client for the Daewa Zone API.
// One generic Resource handles the CRUD surface of every resource kind via
// a small per-kind descriptor; auth endpoints are covered separately. All
// failures are reported as tagged *Error values.
package client

import (
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// AccessTokenCookie is the session cookie set by the admin login endpoint
// and consumed by the route guard.
const AccessTokenCookie = "access_token"

const defaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// BaseURL is the API origin, e.g. "https://api.daewazone.com".
	BaseURL string

	// Timeout bounds each request (default 30s).
	Timeout time.Duration

	// Debug enables resty's request/response tracing.
	Debug bool
}

// Client is the shared HTTP layer under every Resource. It carries the
// session cookie jar, so one Client represents one admin session.
type Client struct {
	http *resty.Client
}

// New creates a Client for the given API origin.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	rc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetDebug(opts.Debug)

	// Tag every outbound call for log correlation with the backend.
	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	rc.OnError(func(req *resty.Request, err error) {
		slog.Debug("api request failed", "method", req.Method, "url", req.URL, "error", err)
	})

	return &Client{http: rc}
}

// R returns a fresh resty request bound to this client.
func (c *Client) R() *resty.Request {
	return c.http.R()
}

// ClearCookies drops the session cookie jar. Called on logout so the
// client forgets the session even when the server call fails.
func (c *Client) ClearCookies() {
	jar, _ := cookiejar.New(nil)
	c.http.SetCookieJar(jar)
}

// HasSessionCookie reports whether the jar currently holds the access
// token cookie for the API origin.
func (c *Client) HasSessionCookie() bool {
	base := c.http.BaseURL
	jar := c.http.GetClient().Jar
	if base == "" || jar == nil {
		return false
	}
	req, err := http.NewRequest(http.MethodGet, base, nil)
	if err != nil {
		return false
	}
	for _, ck := range jar.Cookies(req.URL) {
		if ck.Name == AccessTokenCookie && ck.Value != "" {
			return true
		}
	}
	return false
}
