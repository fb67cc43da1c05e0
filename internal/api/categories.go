// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"fmt"
	"net/http"

	"quillpress/internal/models"
)

// categoryBody is the write shape for the categories resource: the ID is
// server-assigned and never sent.
type categoryBody struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListCategories retrieves the full categories collection.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory submits {name, slug} and returns the created category
// with its server-assigned ID.
func (c *Client) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	var created models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", categoryBody{Name: name, Slug: slug}, &created); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &created, nil
}

// PatchCategory replaces name and slug on the identified category and
// returns the server's resulting representation.
func (c *Client) PatchCategory(ctx context.Context, id, name, slug string) (*models.Category, error) {
	var updated models.Category
	if err := c.do(ctx, http.MethodPatch, "/categories/"+escape(id), categoryBody{Name: name, Slug: slug}, &updated); err != nil {
		return nil, fmt.Errorf("patch category %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteCategory removes the identified category. The API itself does not
// cascade to posts; referential integrity is the caller's concern.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/categories/"+escape(id), nil, nil); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}
