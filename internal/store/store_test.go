// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides shared test infrastructure: each test gets a
// fresh in-process resource API (the mock server over a memory store)
// and a client pointed at it, with a switch to make the API fail on
// demand for error-path coverage.
package store

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"quillpress/internal/api"
	"quillpress/internal/mockapi"
)

// testEnv is one isolated store-plus-server fixture.
type testEnv struct {
	client *api.Client
	// failing makes every request answer 500 while set, simulating a
	// network-side failure without tearing the server down.
	failing atomic.Bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	memory, err := mockapi.NewMemoryStore("")
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	apiHandler := mockapi.NewServer(memory)

	env := &testEnv{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if env.failing.Load() {
			http.Error(w, `{"error":"injected failure"}`, http.StatusInternalServerError)
			return
		}
		apiHandler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	env.client = api.New(srv.URL)
	return env
}
