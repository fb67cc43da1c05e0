// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "quillpress:"

	// DefaultTTL is how long a persisted session lives in Valkey before
	// automatic expiry.
	DefaultTTL = 24 * time.Hour
)

// ValkeyBackend persists session state as JSON in a Valkey
// (Redis-compatible) server. Useful when the client runs on ephemeral
// hosts where a local file does not survive.
type ValkeyBackend struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyBackend returns a backend over the given client with the
// default TTL.
func NewValkeyBackend(client *redis.Client) *ValkeyBackend {
	return &ValkeyBackend{client: client, ttl: DefaultTTL}
}

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}

// Load reads the persisted state. A missing key means no session.
func (b *ValkeyBackend) Load(ctx context.Context) (*State, error) {
	payload, err := b.client.Get(ctx, keyPrefix+Namespace).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session valkey get: %w", err)
	}

	var st State
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("session valkey unmarshal: %w", err)
	}
	return &st, nil
}

// Save writes the state with the configured TTL.
func (b *ValkeyBackend) Save(ctx context.Context, st *State) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("session valkey marshal: %w", err)
	}
	if err := b.client.Set(ctx, keyPrefix+Namespace, payload, b.ttl).Err(); err != nil {
		return fmt.Errorf("session valkey set: %w", err)
	}
	return nil
}

// Clear removes the key. A missing key is not an error.
func (b *ValkeyBackend) Clear(ctx context.Context) error {
	if err := b.client.Del(ctx, keyPrefix+Namespace).Err(); err != nil {
		return fmt.Errorf("session valkey del: %w", err)
	}
	return nil
}
