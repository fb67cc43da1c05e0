// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the record shapes exchanged with the remote
// resource API. Field names use the API's camelCase wire format.
package models

import "time"

// Post is a blog post as held by the resource API. ID and CreatedAt are
// assigned at creation time and immutable afterwards; every other field
// is mutable via a partial patch.
//
// ShortDescription, Image and Thumbnail are nullable: older records were
// written by form versions that did not carry them and decode to nil.
type Post struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription *string   `json:"shortDescription,omitempty"`
	Content          string    `json:"content"`
	CategoryID       string    `json:"categoryId"`
	Image            *string   `json:"image,omitempty"`
	Thumbnail        *string   `json:"thumbnail,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// PostPatch is the partial-update shape for PATCH /posts/{id}. Only
// non-nil fields are serialized, so a patch touches exactly the fields
// the caller set. ID and CreatedAt are deliberately absent.
type PostPatch struct {
	Title            *string `json:"title,omitempty"`
	Slug             *string `json:"slug,omitempty"`
	ShortDescription *string `json:"shortDescription,omitempty"`
	Content          *string `json:"content,omitempty"`
	CategoryID       *string `json:"categoryId,omitempty"`
	Image            *string `json:"image,omitempty"`
	Thumbnail        *string `json:"thumbnail,omitempty"`
}

// Apply merges the set fields of the patch into a copy of p and returns it.
func (patch PostPatch) Apply(p Post) Post {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.ShortDescription != nil {
		p.ShortDescription = patch.ShortDescription
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.Image != nil {
		p.Image = patch.Image
	}
	if patch.Thumbnail != nil {
		p.Thumbnail = patch.Thumbnail
	}
	return p
}

// IsZero reports whether the patch sets no fields at all.
func (patch PostPatch) IsZero() bool {
	return patch.Title == nil && patch.Slug == nil &&
		patch.ShortDescription == nil && patch.Content == nil &&
		patch.CategoryID == nil && patch.Image == nil && patch.Thumbnail == nil
}

// StringPtr is a small helper for building patches and optional fields.
func StringPtr(s string) *string { return &s }
