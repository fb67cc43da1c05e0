// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"quillpress/internal/api"
	"quillpress/internal/config"
	"quillpress/internal/models"
	"quillpress/internal/slug"
)

// ErrCategoryInUse is returned by Delete under the block policy when
// posts still reference the category.
var ErrCategoryInUse = errors.New("store: category is referenced by posts")

// CategoryStore caches the categories collection. Slug is recomputed from
// the name on every create and update; it is never set independently.
type CategoryStore struct {
	client *api.Client
	policy string
	posts  *PostStore // nil when no referential-integrity policy applies

	mu         sync.RWMutex
	categories []models.Category
	fetching   bool
}

// CategoryOption configures a CategoryStore.
type CategoryOption func(*CategoryStore)

// WithDeletePolicy sets the referential-integrity policy applied on
// Delete (config.DeletePolicyBlock, Detach or Cascade). The policy only
// takes effect when a PostStore is attached.
func WithDeletePolicy(policy string) CategoryOption {
	return func(s *CategoryStore) { s.policy = policy }
}

// WithPostStore attaches the post cache the delete policy consults.
func WithPostStore(posts *PostStore) CategoryOption {
	return func(s *CategoryStore) { s.posts = posts }
}

// NewCategoryStore returns an empty store backed by the given API client.
// Without options, deletes are plain (no referential-integrity check),
// matching the behaviour of the resource API itself.
func NewCategoryStore(client *api.Client, opts ...CategoryOption) *CategoryStore {
	s := &CategoryStore{client: client, policy: config.DeletePolicyBlock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Categories returns a snapshot of the cached collection in server order.
func (s *CategoryStore) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// IsFetching reports whether a Fetch is currently in flight.
func (s *CategoryStore) IsFetching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetching
}

// Find returns the cached category with the given ID, or nil.
func (s *CategoryStore) Find(id string) *models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			found := c
			return &found
		}
	}
	return nil
}

// Fetch replaces the entire cache with the server's current collection.
// Like PostStore.Fetch, failures empty the cache and are logged only.
func (s *CategoryStore) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.fetching = true
	s.mu.Unlock()

	categories, err := s.client.ListCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	if err != nil {
		slog.Error("fetch categories failed, cache emptied", "error", err)
		s.categories = nil
		return
	}
	s.categories = categories
}

// Add derives the slug from the name, submits the category, and appends
// the server's representation to the cache on success.
func (s *CategoryStore) Add(ctx context.Context, name string) (*models.Category, error) {
	created, err := s.client.CreateCategory(ctx, name, slug.Generate(name))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Category, 0, len(s.categories)+1)
	next = append(next, s.categories...)
	next = append(next, *created)
	s.categories = next
	return created, nil
}

// Update recomputes the slug from the new name, PATCHes {name, slug},
// and replaces the cached record with the server's response. A failed
// round trip leaves the cached name and slug unchanged.
func (s *CategoryStore) Update(ctx context.Context, id, name string) (*models.Category, error) {
	updated, err := s.client.PatchCategory(ctx, id, name, slug.Generate(name))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Category, len(s.categories))
	for i, c := range s.categories {
		if c.ID == id {
			next[i] = *updated
		} else {
			next[i] = c
		}
	}
	s.categories = next
	return updated, nil
}

// Delete removes the identified category, honouring the configured
// referential-integrity policy when a PostStore is attached:
//
//   - block: refuse with ErrCategoryInUse while posts reference it
//   - detach: clear categoryId on referencing posts first
//   - cascade: delete referencing posts first
//
// The policy checks the server, not the local cache. The cache entry is
// dropped only after the server confirms the deletion.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	if s.posts != nil {
		if err := s.applyDeletePolicy(ctx, id); err != nil {
			return err
		}
	}

	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.ID != id {
			next = append(next, c)
		}
	}
	s.categories = next
	return nil
}

func (s *CategoryStore) applyDeletePolicy(ctx context.Context, id string) error {
	refs, err := s.posts.ReferencingCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	if len(refs) == 0 {
		return nil
	}

	switch s.policy {
	case config.DeletePolicyBlock:
		return fmt.Errorf("%w: %d post(s)", ErrCategoryInUse, len(refs))
	case config.DeletePolicyDetach:
		empty := ""
		for _, p := range refs {
			if err := s.posts.Update(ctx, p.ID, models.PostPatch{CategoryID: &empty}); err != nil {
				return fmt.Errorf("detach post %s: %w", p.ID, err)
			}
		}
	case config.DeletePolicyCascade:
		for _, p := range refs {
			if err := s.posts.Delete(ctx, p.ID); err != nil {
				return fmt.Errorf("cascade delete post %s: %w", p.ID, err)
			}
		}
	default:
		return fmt.Errorf("delete policy: unknown policy %q", s.policy)
	}
	return nil
}
