// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media uploads images to an external imgbb-compatible hosting
// endpoint and returns the hosted URLs verbatim. Compression, retry and
// progress reporting are the host's concern, not ours.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Upload is the result of a successful image upload.
type Upload struct {
	URL          string
	ThumbnailURL string
}

// Uploader posts multipart image uploads to the configured host.
type Uploader struct {
	endpoint string
	key      string
	client   *http.Client
}

// NewUploader returns an uploader for the given endpoint and API key.
func NewUploader(endpoint, key string) *Uploader {
	return &Uploader{
		endpoint: endpoint,
		key:      key,
		// Uploads carry image payloads; allow more than the API default.
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

// hostResponse mirrors the relevant part of the host's response shape:
// {data: {url, thumb: {url}}}.
type hostResponse struct {
	Data struct {
		URL   string `json:"url"`
		Thumb struct {
			URL string `json:"url"`
		} `json:"thumb"`
	} `json:"data"`
}

// Upload sends the image bytes as a multipart form and returns the hosted
// URL plus thumbnail URL.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (*Upload, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("media form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("media read image: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("media form close: %w", err)
	}

	endpoint := u.endpoint
	if u.key != "" {
		endpoint += "?key=" + url.QueryEscape(u.key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("media request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("media read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media host error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed hostResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("media unmarshal: %w", err)
	}
	if parsed.Data.URL == "" {
		return nil, fmt.Errorf("media host returned no url")
	}

	return &Upload{
		URL:          parsed.Data.URL,
		ThumbnailURL: parsed.Data.Thumb.URL,
	}, nil
}
