// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the Daewa Zone domain types and the create/update
// DTOs submitted by the admin dashboard, together with their client-side
// validation rules. Identity and derived counters (views, lecture counts)
// are server-assigned and never set by this client.
package model

import "io"

// Kind identifies a resource kind managed by the admin dashboard.
type Kind string

// Resource kinds.
const (
	KindCategory Kind = "category"
	KindContent  Kind = "content"
	KindSpeaker  Kind = "speaker"
	KindCourse   Kind = "course"
	KindLesson   Kind = "course-lesson"
	KindUser     Kind = "user"
)

// Kinds lists every resource kind in a stable order.
var Kinds = []Kind{KindCategory, KindContent, KindSpeaker, KindCourse, KindLesson, KindUser}

// Upload carries a binary asset (audio file, thumbnail) attached to a
// create or update DTO. DTOs holding a non-nil Upload are submitted as
// multipart form data.
type Upload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

// NewUpload builds an Upload from a file name and reader. The content type
// is left for the transport to default when empty.
func NewUpload(fileName string, r io.Reader) *Upload {
	return &Upload{FileName: fileName, Reader: r}
}
