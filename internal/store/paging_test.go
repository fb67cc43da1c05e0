// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"quillpress/internal/models"
)

func samplePosts() []models.Post {
	return []models.Post{
		{ID: "1", Title: "Go Generics Deep Dive", CategoryID: "tech"},
		{ID: "2", Title: "Gardening in March", CategoryID: "life"},
		{ID: "3", Title: "Another Go Article", CategoryID: "tech"},
		{ID: "4", Title: "Cooking Pasta", CategoryID: "life"},
	}
}

func TestFilterPosts(t *testing.T) {
	posts := samplePosts()

	tests := []struct {
		name       string
		query      string
		categoryID string
		wantIDs    []string
	}{
		{"no filters", "", "", []string{"1", "2", "3", "4"}},
		{"category all", "", CategoryAll, []string{"1", "2", "3", "4"}},
		{"by category", "", "tech", []string{"1", "3"}},
		{"by query case-insensitive", "go", "", []string{"1", "3"}},
		{"query and category", "go", "tech", []string{"1", "3"}},
		{"query excludes category", "go", "life", nil},
		{"no match", "kubernetes", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPosts(posts, tt.query, tt.categoryID)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d posts, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("result[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterPosts_DoesNotMutateInput(t *testing.T) {
	posts := samplePosts()
	FilterPosts(posts, "go", "tech")
	if posts[0].ID != "1" || len(posts) != 4 {
		t.Error("FilterPosts must not mutate its input")
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
		{-1, 10, 0},
	}
	for _, tt := range tests {
		if got := PageCount(tt.total, tt.perPage); got != tt.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name    string
		page    int
		perPage int
		want    []int
	}{
		{"first page", 1, 3, []int{1, 2, 3}},
		{"middle page", 2, 3, []int{4, 5, 6}},
		{"short last page", 3, 3, []int{7}},
		{"page clamped high", 9, 3, []int{7}},
		{"page clamped low", 0, 3, []int{1, 2, 3}},
		{"zero per page", 1, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, tt.perPage)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestPaginate_EmptyInput(t *testing.T) {
	if got := Paginate([]models.Post(nil), 1, 10); got != nil {
		t.Errorf("Paginate(nil) = %v, want nil", got)
	}
}
