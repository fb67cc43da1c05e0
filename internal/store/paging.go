// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"strings"

	"quillpress/internal/models"
)

// List pagination and filtering are pure operations over the full cached
// collection: they recompute on every call from the current filter state
// and persist nothing. The resource API has no server-side equivalents.

// CategoryAll selects posts from every category in FilterPosts.
const CategoryAll = "all"

// FilterPosts returns the posts whose title contains query
// (case-insensitive) and whose category matches categoryID. An empty
// query matches every title; an empty categoryID or CategoryAll matches
// every category.
func FilterPosts(posts []models.Post, query, categoryID string) []models.Post {
	query = strings.ToLower(query)
	var out []models.Post
	for _, p := range posts {
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) {
			continue
		}
		if categoryID != "" && categoryID != CategoryAll && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PageCount returns the number of pages needed to show total items at
// perPage items each. Zero items means zero pages.
func PageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Paginate slices one page out of items. Pages are 1-based; out-of-range
// pages are clamped into the valid range, mirroring how the list views
// snap back when a deletion empties the last page.
func Paginate[T any](items []T, page, perPage int) []T {
	if perPage <= 0 || len(items) == 0 {
		return nil
	}
	last := PageCount(len(items), perPage)
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
