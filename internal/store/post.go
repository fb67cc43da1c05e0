// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the client-side caches that mediate between callers
// and the remote resource API. Each store keeps an in-memory copy of one
// collection, kept eventually consistent through explicit fetch and
// mutate calls. Mutators produce a new slice rather than editing in
// place, so concurrent readers always observe a complete prior or next
// snapshot. All methods are safe for concurrent use.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"quillpress/internal/api"
	"quillpress/internal/models"
	"quillpress/internal/slug"
)

// PostStore caches the posts collection. Construct one per composition
// root (or per test); there is no package-level singleton.
type PostStore struct {
	client *api.Client

	mu       sync.RWMutex
	posts    []models.Post
	fetching bool
}

// NewPostStore returns an empty store backed by the given API client.
func NewPostStore(client *api.Client) *PostStore {
	return &PostStore{client: client}
}

// Posts returns a snapshot of the cached collection in server order.
func (s *PostStore) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// IsFetching reports whether a Fetch is currently in flight.
func (s *PostStore) IsFetching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetching
}

// Fetch replaces the entire cache with the server's current collection.
// Failures are not propagated: the cache is reset to empty and the error
// is logged. Callers that need error UI must intercept at a higher level
// (the API client is available for that); the store itself only exposes
// the fetching flag.
func (s *PostStore) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.fetching = true
	s.mu.Unlock()

	posts, err := s.client.ListPosts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	if err != nil {
		slog.Error("fetch posts failed, cache emptied", "error", err)
		s.posts = nil
		return
	}
	s.posts = posts
}

// Add constructs a new post from the given fields, attaches the creation
// timestamp, derives the slug from the title when unset, and submits it.
// On success the server's representation (with its assigned ID) is
// prepended to the cache. ID and CreatedAt on the input are ignored.
func (s *PostStore) Add(ctx context.Context, p models.Post) (*models.Post, error) {
	p.ID = ""
	p.CreatedAt = time.Now().UTC()
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}

	created, err := s.client.CreatePost(ctx, p)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Post, 0, len(s.posts)+1)
	next = append(next, *created)
	next = append(next, s.posts...)
	s.posts = next
	return created, nil
}

// Update PATCHes the given fields to the identified post. The cached
// record is patched only after the server confirms success; a failed
// round trip leaves the cache untouched.
func (s *PostStore) Update(ctx context.Context, id string, patch models.PostPatch) error {
	if patch.IsZero() {
		return nil
	}
	if _, err := s.client.PatchPost(ctx, id, patch); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Post, len(s.posts))
	for i, p := range s.posts {
		if p.ID == id {
			next[i] = patch.Apply(p)
		} else {
			next[i] = p
		}
	}
	s.posts = next
	return nil
}

// Delete removes the identified post. The cache entry is dropped only
// after the server confirms the deletion.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	if err := s.client.DeletePost(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.ID != id {
			next = append(next, p)
		}
	}
	s.posts = next
	return nil
}

// ByCategory returns the cached posts referencing the given category.
func (s *PostStore) ByCategory(categoryID string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Post
	for _, p := range s.posts {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// ReferencingCategory queries the server (not the cache) for posts that
// reference the given category. Used by the category delete policy,
// which must not act on a stale cache.
func (s *PostStore) ReferencingCategory(ctx context.Context, categoryID string) ([]models.Post, error) {
	posts, err := s.client.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("referencing posts: %w", err)
	}
	var out []models.Post
	for _, p := range posts {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}
