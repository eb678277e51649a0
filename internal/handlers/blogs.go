// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"themargin/internal/apperr"
	"themargin/internal/blog"
	"themargin/internal/middleware"
	"themargin/internal/models"
	"themargin/internal/pagination"
)

// BlogService is the post service used by the handlers.
type BlogService interface {
	Create(ctx context.Context, caller *models.Identity, in blog.CreateInput) (*models.Post, error)
	Get(ctx context.Context, caller *models.Identity, slug string) (*models.Post, error)
	Update(ctx context.Context, caller *models.Identity, slug string, in blog.UpdateInput) (*models.Post, error)
	Delete(ctx context.Context, caller *models.Identity, slug string) (*models.Post, error)
	AuthorizeWrite(ctx context.Context, caller *models.Identity, slug string) error
	ListPublished(ctx context.Context, req pagination.Request) (pagination.Page[models.Post], error)
	ListMine(ctx context.Context, caller *models.Identity, req pagination.Request, paginated bool) (pagination.Page[models.Post], error)
	ListByAuthor(ctx context.Context, authorID string, req pagination.Request) (pagination.Page[models.Post], error)
	ListAll(ctx context.Context, caller *models.Identity) ([]models.Post, error)
	CheckSlugAvailable(ctx context.Context, slug string) (bool, error)
	Bootstrap(ctx context.Context) (int, error)
}

// Blogs groups the post handlers.
type Blogs struct {
	blogs BlogService
}

// NewBlogs creates a new Blogs handler group.
func NewBlogs(blogs BlogService) *Blogs {
	return &Blogs{blogs: blogs}
}

// List serves the public feed. With a limit it returns one page of
// published posts and its meta; without one it returns every post the
// caller may read.
func (b *Blogs) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, paginated := pagination.FromQuery(q.Get("page"), q.Get("limit"))

	if paginated {
		page, err := b.blogs.ListPublished(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writePage(w, page)
		return
	}

	posts, err := b.blogs.ListAll(r.Context(), middleware.IdentityFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, posts)
}

// Create stores a new post for the caller.
func (b *Blogs) Create(w http.ResponseWriter, r *http.Request) {
	var in blog.CreateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := b.blogs.Create(r.Context(), middleware.IdentityFromCtx(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusCreated, post)
}

type slugAvailability struct {
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// CheckSlug reports whether a slug is free.
func (b *Blogs) CheckSlug(w http.ResponseWriter, r *http.Request) {
	available, err := b.blogs.CheckSlugAvailable(r.Context(), r.URL.Query().Get("slug"))
	if err != nil {
		status := statusFor(apperr.KindOf(err))
		if status >= http.StatusInternalServerError {
			writeError(w, r, err)
			return
		}
		writeJSON(w, status, slugAvailability{Error: apperr.Message(err)})
		return
	}
	writeJSON(w, http.StatusOK, slugAvailability{Available: available})
}

// Mine lists the caller's own posts in every status.
func (b *Blogs) Mine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, paginated := pagination.FromQuery(q.Get("page"), q.Get("limit"))

	page, err := b.blogs.ListMine(r.Context(), middleware.IdentityFromCtx(r.Context()), req, paginated)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !paginated {
		writeResult(w, http.StatusOK, page.Items)
		return
	}
	writePage(w, page)
}

type seedResult struct {
	Inserted int `json:"inserted"`
}

// Seed inserts the example posts that are not present yet.
func (b *Blogs) Seed(w http.ResponseWriter, r *http.Request) {
	inserted, err := b.blogs.Bootstrap(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, seedResult{Inserted: inserted})
}

// Get returns a single post.
func (b *Blogs) Get(w http.ResponseWriter, r *http.Request) {
	post, err := b.blogs.Get(r.Context(), middleware.IdentityFromCtx(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, post)
}

// Update applies a partial update. Authorization is decided before the
// payload is read, so a stranger gets 403 even for a malformed body.
func (b *Blogs) Update(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())
	slug := chi.URLParam(r, "slug")

	var in blog.UpdateInput
	if decodeErr := decodeJSON(w, r, &in); decodeErr != nil {
		if err := b.blogs.AuthorizeWrite(r.Context(), caller, slug); err != nil {
			writeError(w, r, err)
			return
		}
		writeError(w, r, decodeErr)
		return
	}

	post, err := b.blogs.Update(r.Context(), caller, slug, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, post)
}

// Delete removes a post and returns its final state.
func (b *Blogs) Delete(w http.ResponseWriter, r *http.Request) {
	post, err := b.blogs.Delete(r.Context(), middleware.IdentityFromCtx(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, post)
}
