package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"themargin/internal/apperr"
	"themargin/internal/models"
	"themargin/internal/pagination"
)

func TestUsersProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		user := testUser()
		accounts := &fakeAccounts{profile: &models.Profile{User: *user, PostsCount: 3}}
		h := NewUsers(accounts, &fakeBlogs{})

		req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/users/"+user.ID.String(), nil), "id", user.ID.String())
		rec := httptest.NewRecorder()
		h.Profile(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
		if accounts.gotID != user.ID.String() {
			t.Errorf("id: got %q", accounts.gotID)
		}
		result, _ := decodeBody(t, rec)["result"].(map[string]any)
		if result["postsCount"] != float64(3) || result["firstName"] != "Ada" {
			t.Errorf("result: got %v", result)
		}
		if _, ok := result["passwordHash"]; ok {
			t.Error("profile leaks password hash")
		}
	})

	t.Run("missing", func(t *testing.T) {
		h := NewUsers(&fakeAccounts{err: apperr.NotFound("User")}, &fakeBlogs{})

		req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/users/nope", nil), "id", "nope")
		rec := httptest.NewRecorder()
		h.Profile(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "User not found." {
			t.Errorf("error: got %q", msg)
		}
	})
}

func TestUsersPosts(t *testing.T) {
	t.Run("defaults to six per page", func(t *testing.T) {
		blogs := &fakeBlogs{page: pagination.NewPage[models.Post](nil, 0, pagination.Normalize(1, 0))}
		h := NewUsers(&fakeAccounts{}, blogs)

		req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/users/abc/posts", nil), "id", "abc")
		rec := httptest.NewRecorder()
		h.Posts(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
		if blogs.gotReq.Limit != pagination.DefaultLimit || blogs.gotReq.Page != 1 {
			t.Errorf("request: got %+v", blogs.gotReq)
		}
		if blogs.gotAuthor != "abc" {
			t.Errorf("author: got %q", blogs.gotAuthor)
		}
		meta, ok := decodeBody(t, rec)["meta"].(map[string]any)
		if !ok || meta["limit"] != float64(pagination.DefaultLimit) {
			t.Errorf("meta: got %v", meta)
		}
	})

	t.Run("explicit page and limit", func(t *testing.T) {
		blogs := &fakeBlogs{}
		h := NewUsers(&fakeAccounts{}, blogs)

		req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/users/abc/posts?page=3&limit=2", nil), "id", "abc")
		h.Posts(httptest.NewRecorder(), req)

		if blogs.gotReq != (pagination.Request{Page: 3, Limit: 2}) {
			t.Errorf("request: got %+v", blogs.gotReq)
		}
	})
}
