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

// ListPosts retrieves the full posts collection. The API does not paginate
// or filter server-side; clients operate on the whole set.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// CreatePost submits a new post. The server assigns the ID; every other
// field, including CreatedAt, travels as given. The created representation
// is returned.
func (c *Client) CreatePost(ctx context.Context, p models.Post) (*models.Post, error) {
	var created models.Post
	if err := c.do(ctx, http.MethodPost, "/posts", p, &created); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &created, nil
}

// PatchPost applies a partial update to the identified post and returns
// the server's resulting representation.
func (c *Client) PatchPost(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	var updated models.Post
	if err := c.do(ctx, http.MethodPatch, "/posts/"+escape(id), patch, &updated); err != nil {
		return nil, fmt.Errorf("patch post %s: %w", id, err)
	}
	return &updated, nil
}

// DeletePost removes the identified post. Deletion is immediate and
// irreversible; there is no soft delete.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/posts/"+escape(id), nil, nil); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}
