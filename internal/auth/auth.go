// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements login, registration and password change over
// the users resource. The resource API performs no authentication of its
// own: accounts are fetched by email and the bcrypt hash is verified
// locally before the session is populated.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"quillpress/internal/api"
	"quillpress/internal/models"
	"quillpress/internal/session"
)

var (
	// ErrInvalidCredentials is returned when the email is unknown or the
	// password does not match. Both cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")

	// ErrEmailTaken is returned by Register when an account with the
	// email already exists.
	ErrEmailTaken = errors.New("auth: email is already registered")

	// ErrNotLoggedIn is returned by ChangePassword without a session.
	ErrNotLoggedIn = errors.New("auth: not logged in")
)

// Authenticator composes the API client and the session store.
type Authenticator struct {
	client   *api.Client
	sessions *session.Store
}

// New returns an Authenticator over the given client and session store.
func New(client *api.Client, sessions *session.Store) *Authenticator {
	return &Authenticator{client: client, sessions: sessions}
}

// Login fetches the account by email, verifies the password against the
// stored bcrypt hash, and populates the session on success.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*models.User, error) {
	users, err := a.client.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrInvalidCredentials
	}

	u := users[0]
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := a.sessions.Login(ctx, u); err != nil {
		return nil, fmt.Errorf("login: persist session: %w", err)
	}
	public := u.Public()
	return &public, nil
}

// Logout clears the session cache and its persisted state.
func (a *Authenticator) Logout(ctx context.Context) error {
	return a.sessions.Logout(ctx)
}

// Register creates a new account. The password is bcrypt-hashed before it
// travels; plaintext is never sent to the resource API.
func (a *Authenticator) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := a.client.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := a.client.CreateUser(ctx, models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	public := created.Public()
	return &public, nil
}

// ChangePassword verifies the current password for the logged-in user and
// replaces the stored hash.
func (a *Authenticator) ChangePassword(ctx context.Context, current, next string) error {
	u, ok := a.sessions.User()
	if !ok {
		return ErrNotLoggedIn
	}

	// Refetch the account: the session never retains the hash.
	users, err := a.client.FindUsersByEmail(ctx, u.Email)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if len(users) == 0 {
		return ErrInvalidCredentials
	}
	account := users[0]

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if _, err := a.client.PatchUserPassword(ctx, account.ID, string(hash)); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
