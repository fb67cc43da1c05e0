// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quillpress/internal/models"
)

// newTestServer creates an httptest.Server that responds with the given
// status code and body bytes. The caller must call Close on the returned
// server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

func TestListPosts_Success(t *testing.T) {
	want := []models.Post{
		{ID: "p1", Title: "First", Slug: "first", Content: "body", CategoryID: "c1", CreatedAt: time.Now().UTC().Truncate(time.Second)},
		{ID: "p2", Title: "Second", Slug: "second", Content: "body", CategoryID: "c1", CreatedAt: time.Now().UTC().Truncate(time.Second)},
	}
	payload, _ := json.Marshal(want)
	srv := newTestServer(t, http.StatusOK, payload)
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts: unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("ListPosts: got %d posts, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Title != want[i].Title {
			t.Errorf("post[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestListPosts_ServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, []byte(`{"error":"boom"}`))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListPosts(context.Background()); err == nil {
		t.Fatal("ListPosts: expected error on 500, got nil")
	}
}

func TestListPosts_MalformedBody(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{not json`))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListPosts(context.Background()); err == nil {
		t.Fatal("ListPosts: expected error on malformed body, got nil")
	}
}

func TestCreatePost_SendsFieldsAndReturnsServerRepresentation(t *testing.T) {
	var capturedMethod, capturedPath string
	var capturedBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		capturedPath = r.URL.Path
		capturedBody, _ = io.ReadAll(r.Body)

		var p models.Post
		json.Unmarshal(capturedBody, &p)
		p.ID = "server-assigned"

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)
	}))
	defer srv.Close()

	c := New(srv.URL)
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created, err := c.CreatePost(context.Background(), models.Post{
		Title:      "My First Post",
		Slug:       "my-first-post",
		Content:    "hello",
		CategoryID: "c1",
		CreatedAt:  createdAt,
	})
	if err != nil {
		t.Fatalf("CreatePost: unexpected error: %v", err)
	}

	if capturedMethod != http.MethodPost || capturedPath != "/posts" {
		t.Errorf("request = %s %s, want POST /posts", capturedMethod, capturedPath)
	}
	if created.ID != "server-assigned" {
		t.Errorf("created.ID = %q, want server-assigned", created.ID)
	}
	if !created.CreatedAt.Equal(createdAt) {
		t.Errorf("created.CreatedAt = %v, want client-supplied %v", created.CreatedAt, createdAt)
	}
	if !strings.Contains(string(capturedBody), `"createdAt"`) {
		t.Errorf("request body should carry createdAt, got: %s", capturedBody)
	}
}

func TestPatchPost_OmitsUnsetFields(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Post{ID: "p1", Title: "New Title"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.PatchPost(context.Background(), "p1", models.PostPatch{
		Title: models.StringPtr("New Title"),
	})
	if err != nil {
		t.Fatalf("PatchPost: unexpected error: %v", err)
	}

	var sent map[string]any
	if err := json.Unmarshal(capturedBody, &sent); err != nil {
		t.Fatalf("patch body is not valid JSON: %v", err)
	}
	if len(sent) != 1 {
		t.Errorf("patch body should carry exactly the set field, got: %s", capturedBody)
	}
	if sent["title"] != "New Title" {
		t.Errorf("patch body title = %v, want New Title", sent["title"])
	}
}

func TestDeletePost_NotFound(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound, []byte(`{}`))
	defer srv.Close()

	c := New(srv.URL)
	err := c.DeletePost(context.Background(), "missing")
	if err == nil {
		t.Fatal("DeletePost: expected error on 404, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeletePost: error should wrap ErrNotFound, got: %v", err)
	}
}

func TestCreateCategory_SendsNameAndSlugOnly(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Category{ID: "c1", Name: "Tech News", Slug: "tech-news"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	created, err := c.CreateCategory(context.Background(), "Tech News", "tech-news")
	if err != nil {
		t.Fatalf("CreateCategory: unexpected error: %v", err)
	}
	if created.ID != "c1" {
		t.Errorf("created.ID = %q, want c1", created.ID)
	}

	var sent map[string]any
	json.Unmarshal(capturedBody, &sent)
	if _, hasID := sent["id"]; hasID {
		t.Error("category create body must not carry an id")
	}
	if sent["name"] != "Tech News" || sent["slug"] != "tech-news" {
		t.Errorf("category create body = %s, want name and slug", capturedBody)
	}
}

func TestFindUsersByEmail_EscapesQuery(t *testing.T) {
	var capturedQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.User{{ID: "u1", Email: "a+b@example.com"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	users, err := c.FindUsersByEmail(context.Background(), "a+b@example.com")
	if err != nil {
		t.Fatalf("FindUsersByEmail: unexpected error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("got %d users, want 1", len(users))
	}
	if !strings.Contains(capturedQuery, "email=a%2Bb%40example.com") {
		t.Errorf("query not escaped: %q", capturedQuery)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := c.ListPosts(ctx); err == nil {
		t.Fatal("ListPosts: expected error when context expires, got nil")
	}
}
