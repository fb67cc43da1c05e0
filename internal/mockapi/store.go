// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mockapi implements the local resource API the stores develop
// and test against: flat posts, categories and users collections with
// JSON bodies, server-assigned IDs, and merge-semantics PATCH. It mimics
// the conventional collection servers used in front-end development.
package mockapi

import (
	"context"
	"errors"

	"quillpress/internal/models"
)

// ErrNotFound is returned by stores when no record has the requested ID.
var ErrNotFound = errors.New("mockapi: record not found")

// Store is the persistence behind the mock API. Two implementations
// exist: an in-memory store with optional db.json persistence, and a
// PostgreSQL store for longer-lived development setups.
type Store interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, p models.Post) (*models.Post, error)
	PatchPost(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (*models.Category, error)
	PatchCategory(ctx context.Context, id, name, slug string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// ListUsers returns all users, or only those with the given email
	// when emailFilter is non-empty.
	ListUsers(ctx context.Context, emailFilter string) ([]models.User, error)
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	PatchUserPassword(ctx context.Context, id, password string) (*models.User, error)
}
