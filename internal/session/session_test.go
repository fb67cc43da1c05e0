// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"

	"quillpress/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:       "u1",
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "$2a$10$notarealhashbutlongenough",
	}
}

func TestStore_LoginPersistsAndRehydrates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auth-storage.json")
	backend := NewFileBackend(path)

	store := NewStore(ctx, backend)
	if _, ok := store.User(); ok {
		t.Fatal("fresh store should start logged out")
	}

	if err := store.Login(ctx, testUser()); err != nil {
		t.Fatalf("Login: unexpected error: %v", err)
	}

	u, ok := store.User()
	if !ok {
		t.Fatal("User() should report authenticated after Login")
	}
	if u.ID != "u1" || u.Email != "ana@example.com" || u.Name != "Ana" {
		t.Errorf("User() = %+v, want id/email/name of the logged-in user", u)
	}
	if u.Password != "" {
		t.Error("session must not retain the password hash")
	}

	// A new store over the same backend simulates a process restart.
	restarted := NewStore(ctx, NewFileBackend(path))
	u, ok = restarted.User()
	if !ok {
		t.Fatal("restarted store should rehydrate the session")
	}
	if u.ID != "u1" {
		t.Errorf("rehydrated user ID = %q, want u1", u.ID)
	}
}

func TestStore_LogoutClearsDurably(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auth-storage.json")

	store := NewStore(ctx, NewFileBackend(path))
	if err := store.Login(ctx, testUser()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout: unexpected error: %v", err)
	}

	if _, ok := store.User(); ok {
		t.Error("User() should report logged out after Logout")
	}

	// A reload must not restore the session.
	restarted := NewStore(ctx, NewFileBackend(path))
	if _, ok := restarted.User(); ok {
		t.Error("restarted store should not restore a logged-out session")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("logout should remove the persisted state file")
	}
}

func TestStore_CorruptStateStartsLoggedOut(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auth-storage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(ctx, NewFileBackend(path))
	if _, ok := store.User(); ok {
		t.Error("corrupt state should rehydrate to logged out, not authenticated")
	}
}

func TestFileBackend_DocumentCarriesNamespace(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auth-storage.json")
	backend := NewFileBackend(path)

	u := testUser().Public()
	if err := backend.Save(ctx, &State{User: &u, IsAuthenticated: true}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read state file: %v", err)
	}
	var doc struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("state file is not JSON: %v", err)
	}
	if doc.Name != Namespace {
		t.Errorf("state file namespace = %q, want %q", doc.Name, Namespace)
	}
}

func TestFileBackend_ClearWithoutFile(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "missing.json"))
	if err := backend.Clear(context.Background()); err != nil {
		t.Errorf("Clear on missing file should be a no-op, got: %v", err)
	}
}

// testValkey returns a Valkey client on DB 15, skipping when the server
// is unreachable.
func testValkey(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("skipping: valkey not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestValkeyBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := NewValkeyBackend(testValkey(t))
	t.Cleanup(func() { backend.Clear(ctx) })

	st, err := backend.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st != nil {
		backend.Clear(ctx)
	}

	u := testUser().Public()
	if err := backend.Save(ctx, &State{User: &u, IsAuthenticated: true}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	st, err = backend.Load(ctx)
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	if st == nil || !st.IsAuthenticated || st.User == nil || st.User.ID != "u1" {
		t.Errorf("Load = %+v, want the saved state", st)
	}

	if err := backend.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	st, err = backend.Load(ctx)
	if err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	if st != nil {
		t.Error("Load after Clear should return nil state")
	}
}
