// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mockapi

import (
	"context"
	"database/sql"
	"fmt"

	"quillpress/internal/models"
)

// PGStore persists the mock API collections in PostgreSQL. It keeps the
// same loose contract as the memory store: no foreign keys, so a deleted
// category can leave dangling categoryId references, exactly like the
// flat-file backend.
type PGStore struct {
	db *sql.DB
}

// NewPGStore returns a store over the given connection pool. The schema
// must already be migrated (database.Migrate).
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const postColumns = `id, title, slug, short_description, content, category_id, image, thumbnail, created_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.ShortDescription, &p.Content,
		&p.CategoryID, &p.Image, &p.Thumbnail, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --- Posts ---

func (s *PGStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (s *PGStore) CreatePost(ctx context.Context, p models.Post) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, short_description, content, category_id, image, thumbnail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.ShortDescription, p.Content, p.CategoryID, p.Image, p.Thumbnail, p.CreatedAt,
	)
	created, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

func (s *PGStore) PatchPost(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	// Merge semantics: read, apply the set fields, write back whole.
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	current, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}

	merged := patch.Apply(*current)
	row = s.db.QueryRowContext(ctx, `
		UPDATE posts SET
			title = $1, slug = $2, short_description = $3, content = $4,
			category_id = $5, image = $6, thumbnail = $7
		WHERE id = $8
		RETURNING `+postColumns,
		merged.Title, merged.Slug, merged.ShortDescription, merged.Content,
		merged.CategoryID, merged.Image, merged.Thumbnail, id,
	)
	updated, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("patch post: %w", err)
	}
	return updated, nil
}

func (s *PGStore) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Categories ---

func (s *PGStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (s *PGStore) CreateCategory(ctx context.Context, c models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug) VALUES ($1, $2)
		RETURNING id, name, slug`,
		c.Name, c.Slug,
	)
	var created models.Category
	if err := row.Scan(&created.ID, &created.Name, &created.Slug); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &created, nil
}

func (s *PGStore) PatchCategory(ctx context.Context, id, name, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE categories SET name = $1, slug = $2 WHERE id = $3
		RETURNING id, name, slug`,
		name, slug, id,
	)
	var updated models.Category
	err := row.Scan(&updated.ID, &updated.Name, &updated.Slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patch category: %w", err)
	}
	return &updated, nil
}

func (s *PGStore) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Users ---

func (s *PGStore) ListUsers(ctx context.Context, emailFilter string) ([]models.User, error) {
	query := `SELECT id, name, email, password FROM users ORDER BY position`
	args := []any{}
	if emailFilter != "" {
		query = `SELECT id, name, email, password FROM users WHERE email = $1 ORDER BY position`
		args = append(args, emailFilter)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var items []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, u)
	}
	return items, rows.Err()
}

func (s *PGStore) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password) VALUES ($1, $2, $3)
		RETURNING id, name, email, password`,
		u.Name, u.Email, u.Password,
	)
	var created models.User
	if err := row.Scan(&created.ID, &created.Name, &created.Email, &created.Password); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

func (s *PGStore) PatchUserPassword(ctx context.Context, id, password string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users SET password = $1 WHERE id = $2
		RETURNING id, name, email, password`,
		password, id,
	)
	var updated models.User
	err := row.Scan(&updated.ID, &updated.Name, &updated.Email, &updated.Password)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("patch user: %w", err)
	}
	return &updated, nil
}
