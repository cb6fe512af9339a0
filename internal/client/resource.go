// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/daewazone/admin-go/internal/model"
)

// Validatable is implemented by every create/update DTO.
type Validatable interface {
	Validate() error
}

// fileCarrier is implemented by DTOs that may attach a binary upload.
type fileCarrier interface {
	File() (string, *model.Upload)
}

// Descriptor describes the REST surface of one resource kind.
type Descriptor struct {
	Kind  model.Kind
	Path  string // versioned endpoint, e.g. "/api/v1/category"
	Label string // human name used in fallback error messages

	// MultipartUpdate forces multipart encoding on updates even without
	// a new upload (the course-lesson endpoint requires it).
	MultipartUpdate bool
}

// Resource is the typed CRUD client for one resource kind. T is the
// entity type, C and U its create and update DTOs. It is stateless;
// caching and invalidation live in the store package.
type Resource[T any, C Validatable, U Validatable] struct {
	c    *Client
	desc Descriptor
}

// NewResource binds a descriptor to a shared Client.
func NewResource[T any, C Validatable, U Validatable](c *Client, desc Descriptor) *Resource[T, C, U] {
	return &Resource[T, C, U]{c: c, desc: desc}
}

// Kind returns the resource kind this client serves.
func (r *Resource[T, C, U]) Kind() model.Kind {
	return r.desc.Kind
}

// List fetches the full collection in server-defined order.
func (r *Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	fallback := "Failed to load " + r.desc.Label + " list"

	var out []T
	resp, err := r.c.R().SetContext(ctx).SetResult(&out).Get(r.desc.Path)
	if err != nil {
		return nil, transportError(fallback, err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), resp.Body(), fallback)
	}
	return out, nil
}

// ListPage fetches one page of the collection with server-side search.
func (r *Resource[T, C, U]) ListPage(ctx context.Context, params ListParams) (*Page[T], error) {
	fallback := "Failed to load " + r.desc.Label + " list"

	var out Page[T]
	resp, err := r.c.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params.Values()).
		SetResult(&out).
		Get(r.desc.Path)
	if err != nil {
		return nil, transportError(fallback, err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), resp.Body(), fallback)
	}
	return &out, nil
}

// Get fetches one entity by id. Unknown ids yield a NotFound error.
func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	fallback := "Failed to load " + r.desc.Label

	var out T
	resp, err := r.c.R().SetContext(ctx).SetResult(&out).Get(r.desc.Path + "/" + id)
	if err != nil {
		return nil, transportError(fallback, err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), resp.Body(), fallback)
	}
	return &out, nil
}

// Create validates and submits a new entity. DTOs carrying an upload are
// sent as multipart form data, others as JSON.
func (r *Resource[T, C, U]) Create(ctx context.Context, dto C) (*T, error) {
	if err := dto.Validate(); err != nil {
		return nil, validationError(err)
	}
	fallback := "Failed to create " + r.desc.Label

	req := r.c.R().SetContext(ctx)
	if err := encodeBody(req, dto, false); err != nil {
		return nil, transportError(fallback, err)
	}

	var out T
	resp, err := req.SetResult(&out).Post(r.desc.Path)
	if err != nil {
		return nil, transportError(fallback, err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), resp.Body(), fallback)
	}
	return &out, nil
}

// Update validates and submits a partial update. The request is JSON
// unless a new upload is attached (or the descriptor forces multipart);
// omitted fields are left unchanged server-side.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, dto U) (*T, error) {
	if err := dto.Validate(); err != nil {
		return nil, validationError(err)
	}
	fallback := "Failed to update " + r.desc.Label

	req := r.c.R().SetContext(ctx)
	if err := encodeBody(req, dto, r.desc.MultipartUpdate); err != nil {
		return nil, transportError(fallback, err)
	}

	var out T
	resp, err := req.SetResult(&out).Patch(r.desc.Path + "/" + id)
	if err != nil {
		return nil, transportError(fallback, err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), resp.Body(), fallback)
	}
	return &out, nil
}

// Delete removes one entity. The caller issues exactly one call per
// confirmed intent; there is no retry here.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	fallback := "Failed to delete " + r.desc.Label

	resp, err := r.c.R().SetContext(ctx).Delete(r.desc.Path + "/" + id)
	if err != nil {
		return transportError(fallback, err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), resp.Body(), fallback)
	}
	return nil
}

// encodeBody applies the encoding rule: multipart when the DTO carries an
// upload or multipart is forced, JSON otherwise.
func encodeBody(req *resty.Request, dto any, forceMultipart bool) error {
	field, up := uploadOf(dto)
	if up == nil && !forceMultipart {
		req.SetHeader("Content-Type", "application/json").SetBody(dto)
		return nil
	}

	fields, err := formFields(dto)
	if err != nil {
		return err
	}
	req.SetMultipartFormData(fields)

	if up != nil {
		contentType := up.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		req.SetMultipartField(field, up.FileName, contentType, up.Reader)
	}
	return nil
}

// uploadOf extracts the attached upload from DTOs that support one.
func uploadOf(dto any) (string, *model.Upload) {
	fc, ok := dto.(fileCarrier)
	if !ok {
		return "", nil
	}
	return fc.File()
}
