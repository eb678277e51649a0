// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"themargin/internal/account"
	"themargin/internal/apperr"
	"themargin/internal/models"
)

// Accounts is the account service used by the handlers.
type Accounts interface {
	Register(ctx context.Context, in account.RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, in account.LoginInput) (*models.User, error)
	Profile(ctx context.Context, id string) (*models.Profile, error)
}

// Sessions issues and revokes login sessions. *session.Store satisfies it.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, identity *models.Identity) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	accounts Accounts
	sessions Sessions
}

// NewAuth creates a new Auth handler group.
func NewAuth(accounts Accounts, sessions Sessions) *Auth {
	return &Auth{accounts: accounts, sessions: sessions}
}

type userResponse struct {
	User *models.User `json:"user"`
}

// Signup registers a user and logs them in.
func (a *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var in account.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := a.accounts.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !a.startSession(w, r, user) {
		return
	}
	slog.Info("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, userResponse{User: user})
}

// Login checks credentials and issues a session cookie.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in account.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := a.accounts.Authenticate(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !a.startSession(w, r, user) {
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// Logout destroys the session and expires the cookie. It succeeds for
// anonymous callers too.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		writeError(w, r, apperr.Unavailable(err))
		return
	}
	writeResult(w, http.StatusOK, true)
}

func (a *Auth) startSession(w http.ResponseWriter, r *http.Request, user *models.User) bool {
	_, err := a.sessions.Create(r.Context(), w, &models.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		writeError(w, r, apperr.Unavailable(err))
		return false
	}
	return true
}
