// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpload_Success(t *testing.T) {
	var capturedKey, capturedFilename string
	var capturedBytes []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedKey = r.URL.Query().Get("key")

		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("request has no image form file: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer file.Close()
		capturedFilename = header.Filename
		capturedBytes, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"url":"https://img.example/full.png","thumb":{"url":"https://img.example/thumb.png"}}}`))
	}))
	defer srv.Close()

	u := NewUploader(srv.URL, "test-key")
	got, err := u.Upload(context.Background(), "cover.png", strings.NewReader("fake png bytes"))
	if err != nil {
		t.Fatalf("Upload: unexpected error: %v", err)
	}

	if capturedKey != "test-key" {
		t.Errorf("key query = %q, want test-key", capturedKey)
	}
	if capturedFilename != "cover.png" {
		t.Errorf("filename = %q, want cover.png", capturedFilename)
	}
	if string(capturedBytes) != "fake png bytes" {
		t.Errorf("uploaded bytes = %q, want original content", capturedBytes)
	}
	if got.URL != "https://img.example/full.png" {
		t.Errorf("URL = %q, want hosted url verbatim", got.URL)
	}
	if got.ThumbnailURL != "https://img.example/thumb.png" {
		t.Errorf("ThumbnailURL = %q, want thumb url verbatim", got.ThumbnailURL)
	}
}

func TestUpload_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	u := NewUploader(srv.URL, "bad-key")
	if _, err := u.Upload(context.Background(), "x.png", strings.NewReader("data")); err == nil {
		t.Fatal("Upload: expected error on 403, got nil")
	}
}

func TestUpload_MissingURLInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	u := NewUploader(srv.URL, "")
	if _, err := u.Upload(context.Background(), "x.png", strings.NewReader("data")); err == nil {
		t.Fatal("Upload: expected error when host returns no url, got nil")
	}
}
