// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import "github.com/daewazone/admin-go/internal/model"

// Descriptors for the six resource kinds.
var (
	CategoryDescriptor = Descriptor{Kind: model.KindCategory, Path: "/api/v1/category", Label: "category"}
	ContentDescriptor  = Descriptor{Kind: model.KindContent, Path: "/api/v1/content", Label: "content"}
	SpeakerDescriptor  = Descriptor{Kind: model.KindSpeaker, Path: "/api/v1/speaker", Label: "speaker"}
	CourseDescriptor   = Descriptor{Kind: model.KindCourse, Path: "/api/v1/course", Label: "course"}
	LessonDescriptor   = Descriptor{Kind: model.KindLesson, Path: "/api/v1/course-lesson", Label: "lesson", MultipartUpdate: true}
	UserDescriptor     = Descriptor{Kind: model.KindUser, Path: "/api/v1/user", Label: "user"}
)

// Typed resource clients. Each one binds a descriptor and the matching
// entity/DTO types to a shared session Client.

// Categories returns the category resource client.
func Categories(c *Client) *Resource[model.Category, *model.CreateCategoryDTO, *model.UpdateCategoryDTO] {
	return NewResource[model.Category, *model.CreateCategoryDTO, *model.UpdateCategoryDTO](c, CategoryDescriptor)
}

// Contents returns the lecture resource client.
func Contents(c *Client) *Resource[model.Content, *model.CreateContentDTO, *model.UpdateContentDTO] {
	return NewResource[model.Content, *model.CreateContentDTO, *model.UpdateContentDTO](c, ContentDescriptor)
}

// Speakers returns the speaker resource client.
func Speakers(c *Client) *Resource[model.Speaker, *model.CreateSpeakerDTO, *model.UpdateSpeakerDTO] {
	return NewResource[model.Speaker, *model.CreateSpeakerDTO, *model.UpdateSpeakerDTO](c, SpeakerDescriptor)
}

// Courses returns the course resource client.
func Courses(c *Client) *Resource[model.Course, *model.CreateCourseDTO, *model.UpdateCourseDTO] {
	return NewResource[model.Course, *model.CreateCourseDTO, *model.UpdateCourseDTO](c, CourseDescriptor)
}

// Lessons returns the course-lesson resource client.
func Lessons(c *Client) *Resource[model.Lesson, *model.CreateLessonDTO, *model.UpdateLessonDTO] {
	return NewResource[model.Lesson, *model.CreateLessonDTO, *model.UpdateLessonDTO](c, LessonDescriptor)
}

// Users returns the user resource client.
func Users(c *Client) *Resource[model.User, *model.CreateUserDTO, *model.UpdateUserDTO] {
	return NewResource[model.User, *model.CreateUserDTO, *model.UpdateUserDTO](c, UserDescriptor)
}
