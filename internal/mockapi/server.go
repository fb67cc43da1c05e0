// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quillpress/internal/middleware"
	"quillpress/internal/models"
)

// NewServer returns the mock API handler over the given store. The route
// surface matches the resource API contract the stores are written
// against; there is no authentication on any route.
func NewServer(store Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", listPosts(store))
		r.Post("/", createPost(store))
		r.Patch("/{id}", patchPost(store))
		r.Delete("/{id}", deletePost(store))
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", listCategories(store))
		r.Post("/", createCategory(store))
		r.Patch("/{id}", patchCategory(store))
		r.Delete("/{id}", deleteCategory(store))
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", listUsers(store))
		r.Post("/", createUser(store))
		r.Patch("/{id}", patchUser(store))
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// writeJSON encodes v with the given status. Encoding failures are logged;
// the status line has already been sent by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response failed", "error", err)
	}
}

// writeError maps store errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	slog.Error("mockapi store error", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

// --- Posts ---

func listPosts(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := store.ListPosts(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if posts == nil {
			posts = []models.Post{}
		}
		writeJSON(w, http.StatusOK, posts)
	}
}

func createPost(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Post
		if !decode(w, r, &p) {
			return
		}
		created, err := store.CreatePost(r.Context(), p)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func patchPost(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.PostPatch
		if !decode(w, r, &patch) {
			return
		}
		updated, err := store.PatchPost(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deletePost(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{})
	}
}

// --- Categories ---

func listCategories(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := store.ListCategories(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if categories == nil {
			categories = []models.Category{}
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func createCategory(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Category
		if !decode(w, r, &c) {
			return
		}
		created, err := store.CreateCategory(r.Context(), c)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func patchCategory(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Category
		if !decode(w, r, &c) {
			return
		}
		updated, err := store.PatchCategory(r.Context(), chi.URLParam(r, "id"), c.Name, c.Slug)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteCategory(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{})
	}
}

// --- Users ---

func listUsers(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := store.ListUsers(r.Context(), r.URL.Query().Get("email"))
		if err != nil {
			writeError(w, err)
			return
		}
		if users == nil {
			users = []models.User{}
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func createUser(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if !decode(w, r, &u) {
			return
		}
		created, err := store.CreateUser(r.Context(), u)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func patchUser(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		if !decode(w, r, &body) {
			return
		}
		updated, err := store.PatchUserPassword(r.Context(), chi.URLParam(r, "id"), body.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
