// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"quillpress/internal/models"
)

// MemoryStore keeps all collections in memory, in insertion order, and
// optionally writes them through to a db.json file so data survives
// restarts the way the classic development mock servers do.
type MemoryStore struct {
	mu         sync.RWMutex
	posts      []models.Post
	categories []models.Category
	users      []models.User
	path       string // "" disables persistence
}

// dbDocument is the db.json document shape.
type dbDocument struct {
	Posts      []models.Post     `json:"posts"`
	Categories []models.Category `json:"categories"`
	Users      []models.User     `json:"users"`
}

// NewMemoryStore creates a store, loading existing data from path when
// the file exists. An empty path keeps everything in memory only.
func NewMemoryStore(path string) (*MemoryStore, error) {
	s := &MemoryStore{path: path}
	if path == "" {
		return s, nil
	}

	payload, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mockapi load %s: %w", path, err)
	}

	var db dbDocument
	if err := json.Unmarshal(payload, &db); err != nil {
		return nil, fmt.Errorf("mockapi parse %s: %w", path, err)
	}
	s.posts = db.Posts
	s.categories = db.Categories
	s.users = db.Users
	return s, nil
}

// persist writes the current collections to disk. Callers hold the lock.
func (s *MemoryStore) persist() error {
	if s.path == "" {
		return nil
	}
	payload, err := json.MarshalIndent(dbDocument{
		Posts:      s.posts,
		Categories: s.categories,
		Users:      s.users,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("mockapi marshal db: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mockapi mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("mockapi write db: %w", err)
	}
	return nil
}

// --- Posts ---

func (s *MemoryStore) ListPosts(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *MemoryStore) CreatePost(_ context.Context, p models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.posts = append(s.posts, p)
	if err := s.persist(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MemoryStore) PatchPost(_ context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts[i] = patch.Apply(p)
			if err := s.persist(); err != nil {
				return nil, err
			}
			updated := s.posts[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return s.persist()
		}
	}
	return ErrNotFound
}

// --- Categories ---

func (s *MemoryStore) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *MemoryStore) CreateCategory(_ context.Context, c models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.categories = append(s.categories, c)
	if err := s.persist(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MemoryStore) PatchCategory(_ context.Context, id, name, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Name = name
			s.categories[i].Slug = slug
			if err := s.persist(); err != nil {
				return nil, err
			}
			updated := s.categories[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			// No cascade: posts keep their categoryId, dangling or not.
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return s.persist()
		}
	}
	return ErrNotFound
}

// --- Users ---

func (s *MemoryStore) ListUsers(_ context.Context, emailFilter string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.User
	for _, u := range s.users {
		if emailFilter == "" || u.Email == emailFilter {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, u models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = uuid.NewString()
	s.users = append(s.users, u)
	if err := s.persist(); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MemoryStore) PatchUserPassword(_ context.Context, id, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Password = password
			if err := s.persist(); err != nil {
				return nil, err
			}
			updated := s.users[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}
