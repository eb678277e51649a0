// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"themargin/internal/apperr"
	"themargin/internal/models"
)

func testUser() *models.User {
	return &models.User{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Email: "ada@themargin.local", PasswordHash: "$2a$10$secret"}
}

func authCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	return nil
}

func TestSignup(t *testing.T) {
	t.Run("creates user and session", func(t *testing.T) {
		user := testUser()
		accounts := &fakeAccounts{user: user}
		sessions := &fakeSessions{}
		h := NewAuth(accounts, sessions)

		body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@themargin.local","password":"pw"}`
		req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Signup(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d, want 201 (body %s)", rec.Code, rec.Body.String())
		}
		if accounts.gotRegister.Email != "ada@themargin.local" || accounts.gotRegister.FirstName != "Ada" {
			t.Errorf("register input: got %+v", accounts.gotRegister)
		}
		if sessions.created == nil || sessions.created.UserID != user.ID || sessions.created.Email != user.Email {
			t.Errorf("session identity: got %+v", sessions.created)
		}
		if authCookie(rec) == nil {
			t.Error("expected auth_token cookie")
		}
		if strings.Contains(rec.Body.String(), "secret") {
			t.Error("response leaks password hash")
		}
		got, _ := decodeBody(t, rec)["user"].(map[string]any)
		if got["email"] != user.Email {
			t.Errorf("user.email: got %v", got["email"])
		}
	})

	t.Run("registration error creates no session", func(t *testing.T) {
		sessions := &fakeSessions{}
		h := NewAuth(&fakeAccounts{err: apperr.Validation("User already exists")}, sessions)

		req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(`{"email":"a@b.c"}`))
		rec := httptest.NewRecorder()
		h.Signup(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "User already exists" {
			t.Errorf("error: got %q", msg)
		}
		if sessions.created != nil {
			t.Error("session should not be created")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		accounts := &fakeAccounts{user: testUser()}
		h := NewAuth(accounts, &fakeSessions{})

		req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(`not json`))
		rec := httptest.NewRecorder()
		h.Signup(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "Invalid request" {
			t.Errorf("error: got %q", msg)
		}
	})

	t.Run("session store failure", func(t *testing.T) {
		h := NewAuth(&fakeAccounts{user: testUser()}, &fakeSessions{createErr: errors.New("valkey down")})

		req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.Signup(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status: got %d, want 503", rec.Code)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		user := testUser()
		accounts := &fakeAccounts{user: user}
		sessions := &fakeSessions{}
		h := NewAuth(accounts, sessions)

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ada@themargin.local","password":"pw"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
		if accounts.gotLogin.Password != "pw" {
			t.Errorf("login input: got %+v", accounts.gotLogin)
		}
		if sessions.created == nil || sessions.created.UserID != user.ID {
			t.Errorf("session identity: got %+v", sessions.created)
		}
		if authCookie(rec) == nil {
			t.Error("expected auth_token cookie")
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		sessions := &fakeSessions{}
		h := NewAuth(&fakeAccounts{err: apperr.Unauthenticated("Invalid email or password.")}, sessions)

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"x@y.z","password":"no"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "Invalid email or password." {
			t.Errorf("error: got %q", msg)
		}
		if authCookie(rec) != nil {
			t.Error("no cookie expected on failed login")
		}
	})
}

func TestLogout(t *testing.T) {
	t.Run("destroys session", func(t *testing.T) {
		sessions := &fakeSessions{}
		h := NewAuth(&fakeAccounts{}, sessions)

		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rec.Code)
		}
		if !sessions.destroyed {
			t.Error("session should be destroyed")
		}
		if c := authCookie(rec); c == nil || c.MaxAge >= 0 {
			t.Errorf("cookie should be expired, got %+v", c)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		h := NewAuth(&fakeAccounts{}, &fakeSessions{destroyErr: errors.New("valkey down")})

		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status: got %d, want 503", rec.Code)
		}
	})
}
