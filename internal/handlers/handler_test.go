// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: in-memory service fakes and request helpers. End-to-end tests
// against PostgreSQL and Valkey live in the router package.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"themargin/internal/account"
	"themargin/internal/blog"
	"themargin/internal/middleware"
	"themargin/internal/models"
	"themargin/internal/pagination"
)

// fakeBlogs implements BlogService. Every method returns the configured
// values and records its arguments.
type fakeBlogs struct {
	post      *models.Post
	posts     []models.Post
	page      pagination.Page[models.Post]
	available bool
	inserted  int
	err       error
	authzErr  error

	gotCaller    *models.Identity
	gotSlug      string
	gotReq       pagination.Request
	gotPaginated bool
	gotAuthor    string
	gotCreate    blog.CreateInput
	gotUpdate    blog.UpdateInput
	calls        []string
}

func (f *fakeBlogs) record(name string, caller *models.Identity, slug string) {
	f.calls = append(f.calls, name)
	f.gotCaller = caller
	f.gotSlug = slug
}

func (f *fakeBlogs) Create(_ context.Context, caller *models.Identity, in blog.CreateInput) (*models.Post, error) {
	f.record("Create", caller, "")
	f.gotCreate = in
	return f.post, f.err
}

func (f *fakeBlogs) Get(_ context.Context, caller *models.Identity, slug string) (*models.Post, error) {
	f.record("Get", caller, slug)
	return f.post, f.err
}

func (f *fakeBlogs) Update(_ context.Context, caller *models.Identity, slug string, in blog.UpdateInput) (*models.Post, error) {
	f.record("Update", caller, slug)
	f.gotUpdate = in
	return f.post, f.err
}

func (f *fakeBlogs) Delete(_ context.Context, caller *models.Identity, slug string) (*models.Post, error) {
	f.record("Delete", caller, slug)
	return f.post, f.err
}

func (f *fakeBlogs) AuthorizeWrite(_ context.Context, caller *models.Identity, slug string) error {
	f.record("AuthorizeWrite", caller, slug)
	return f.authzErr
}

func (f *fakeBlogs) ListPublished(_ context.Context, req pagination.Request) (pagination.Page[models.Post], error) {
	f.record("ListPublished", nil, "")
	f.gotReq = req
	return f.page, f.err
}

func (f *fakeBlogs) ListMine(_ context.Context, caller *models.Identity, req pagination.Request, paginated bool) (pagination.Page[models.Post], error) {
	f.record("ListMine", caller, "")
	f.gotReq = req
	f.gotPaginated = paginated
	return f.page, f.err
}

func (f *fakeBlogs) ListByAuthor(_ context.Context, authorID string, req pagination.Request) (pagination.Page[models.Post], error) {
	f.record("ListByAuthor", nil, "")
	f.gotAuthor = authorID
	f.gotReq = req
	return f.page, f.err
}

func (f *fakeBlogs) ListAll(_ context.Context, caller *models.Identity) ([]models.Post, error) {
	f.record("ListAll", caller, "")
	return f.posts, f.err
}

func (f *fakeBlogs) CheckSlugAvailable(_ context.Context, slug string) (bool, error) {
	f.record("CheckSlugAvailable", nil, slug)
	return f.available, f.err
}

func (f *fakeBlogs) Bootstrap(context.Context) (int, error) {
	f.record("Bootstrap", nil, "")
	return f.inserted, f.err
}

// fakeAccounts implements Accounts.
type fakeAccounts struct {
	user    *models.User
	profile *models.Profile
	err     error

	gotRegister account.RegisterInput
	gotLogin    account.LoginInput
	gotID       string
}

func (f *fakeAccounts) Register(_ context.Context, in account.RegisterInput) (*models.User, error) {
	f.gotRegister = in
	return f.user, f.err
}

func (f *fakeAccounts) Authenticate(_ context.Context, in account.LoginInput) (*models.User, error) {
	f.gotLogin = in
	return f.user, f.err
}

func (f *fakeAccounts) Profile(_ context.Context, id string) (*models.Profile, error) {
	f.gotID = id
	return f.profile, f.err
}

// fakeSessions implements Sessions and sets a recognizable cookie.
type fakeSessions struct {
	created    *models.Identity
	destroyed  bool
	createErr  error
	destroyErr error
}

func (f *fakeSessions) Create(_ context.Context, w http.ResponseWriter, identity *models.Identity) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = identity
	http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "token", Path: "/", HttpOnly: true})
	return "token", nil
}

func (f *fakeSessions) Destroy(_ context.Context, w http.ResponseWriter, _ *http.Request) error {
	if f.destroyErr != nil {
		return f.destroyErr
	}
	f.destroyed = true
	http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "", Path: "/", MaxAge: -1})
	return nil
}

func testIdentity() *models.Identity {
	return &models.Identity{UserID: uuid.New(), Email: "author@themargin.local"}
}

func testPost(author uuid.UUID, slug string) *models.Post {
	return &models.Post{
		ID:       uuid.New(),
		Title:    "Title " + slug,
		Slug:     slug,
		Content:  "Body",
		AuthorID: author,
		Status:   models.PostStatusPublished,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withIdentity attaches a caller identity the way LoadIdentity does.
func withIdentity(r *http.Request, identity *models.Identity) *http.Request {
	return r.WithContext(middleware.WithIdentity(r.Context(), identity))
}

// decodeBody decodes a JSON response body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

// errorMessage returns the "error" field of a JSON error body.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeBody(t, rec)["error"].(string)
	return msg
}
