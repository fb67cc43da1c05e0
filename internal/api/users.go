// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"quillpress/internal/models"
)

// FindUsersByEmail queries the users resource filtered by exact email.
// The API performs no authentication; callers verify credentials locally
// against the returned password hash.
func (c *Client) FindUsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	var users []models.User
	path := "/users?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return users, nil
}

// CreateUser registers a new account. The Password field must already be
// hashed; plaintext never travels.
func (c *Client) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	var created models.User
	if err := c.do(ctx, http.MethodPost, "/users", u, &created); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

// PatchUserPassword replaces the stored password hash for the identified user.
func (c *Client) PatchUserPassword(ctx context.Context, id, passwordHash string) (*models.User, error) {
	body := struct {
		Password string `json:"password"`
	}{Password: passwordHash}

	var updated models.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+escape(id), body, &updated); err != nil {
		return nil, fmt.Errorf("patch user %s: %w", id, err)
	}
	return &updated, nil
}
