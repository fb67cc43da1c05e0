// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed inserts development data: an admin account and a starter category
// with one welcome post. It is a no-op when data already exists.
func Seed(db *sql.DB) error {
	var userCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return fmt.Errorf("seed count users: %w", err)
	}

	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash password: %w", err)
		}
		_, err = db.Exec(`
			INSERT INTO users (name, email, password) VALUES ($1, $2, $3)`,
			"Admin", "admin@example.com", string(hash),
		)
		if err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
		slog.Info("seeded admin user", "email", "admin@example.com")
	}

	var categoryCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&categoryCount); err != nil {
		return fmt.Errorf("seed count categories: %w", err)
	}
	if categoryCount > 0 {
		return nil
	}

	var categoryID string
	err := db.QueryRow(`
		INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`,
		"General", "general",
	).Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO posts (title, slug, content, category_id) VALUES ($1, $2, $3, $4)`,
		"Welcome", "welcome", "Your blog is up and running.", categoryID,
	)
	if err != nil {
		return fmt.Errorf("seed post: %w", err)
	}

	slog.Info("seeded starter content", "category", "General")
	return nil
}
