// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog implements the post operations exposed over HTTP. It
// validates payloads, resolves slugs, applies the access rules and
// delegates persistence to a PostStore.
//
// Mutations always fetch the stored post and authorize against its author
// before writing; the author is never taken from the payload.
package blog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"themargin/internal/access"
	"themargin/internal/apperr"
	"themargin/internal/models"
	"themargin/internal/pagination"
)

// PostStore is the persistence the service needs. *store.PostStore
// satisfies it.
type PostStore interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	Update(ctx context.Context, slug string, authorID uuid.UUID, patch models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, slug string, authorID uuid.UUID) (*models.Post, error)
	ListPublished(ctx context.Context, req pagination.Request) (pagination.Page[models.Post], error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, req pagination.Request) (pagination.Page[models.Post], error)
	ListPublishedByAuthor(ctx context.Context, authorID uuid.UUID, req pagination.Request) (pagination.Page[models.Post], error)
	ListAll(ctx context.Context) ([]models.Post, error)
	ListAllByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Seed(ctx context.Context) (int, error)
}

// Service implements the blog operations.
type Service struct {
	posts PostStore
}

// NewService wires a Service.
func NewService(posts PostStore) *Service {
	return &Service{posts: posts}
}

// Create stores a new post owned by caller.
func (s *Service) Create(ctx context.Context, caller *models.Identity, in CreateInput) (*models.Post, error) {
	if caller == nil {
		return nil, apperr.Unauthenticated("")
	}

	p, err := in.post(caller)
	if err != nil {
		return nil, err
	}

	created, err := s.posts.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	slog.Info("post created", "slug", created.Slug, "author", created.AuthorID, "status", created.Status)
	return created, nil
}

// Get returns the post with the given slug if caller may read it. Drafts
// of other authors are reported as not found.
func (s *Service) Get(ctx context.Context, caller *models.Identity, slug string) (*models.Post, error) {
	p, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizeRead(caller, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial update to a post caller owns.
func (s *Service) Update(ctx context.Context, caller *models.Identity, slug string, in UpdateInput) (*models.Post, error) {
	if _, err := s.authorizedPost(ctx, caller, slug); err != nil {
		return nil, err
	}

	patch, err := in.patch()
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.Update(ctx, slug, caller.UserID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Deleted between the ownership check and the write.
		return nil, apperr.NotFound("Blog")
	}
	if updated.Slug != slug {
		slog.Info("post renamed", "from", slug, "to", updated.Slug)
	}
	return updated, nil
}

// Delete removes a post caller owns and returns its final state.
func (s *Service) Delete(ctx context.Context, caller *models.Identity, slug string) (*models.Post, error) {
	if _, err := s.authorizedPost(ctx, caller, slug); err != nil {
		return nil, err
	}

	deleted, err := s.posts.Delete(ctx, slug, caller.UserID)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, apperr.NotFound("Blog")
	}
	slog.Info("post deleted", "slug", deleted.Slug, "author", deleted.AuthorID)
	return deleted, nil
}

// AuthorizeWrite runs the checks Update and Delete apply before writing,
// without writing anything.
func (s *Service) AuthorizeWrite(ctx context.Context, caller *models.Identity, slug string) error {
	_, err := s.authorizedPost(ctx, caller, slug)
	return err
}

// authorizedPost loads the stored post and checks that caller owns it.
// An anonymous caller is rejected before the lookup.
func (s *Service) authorizedPost(ctx context.Context, caller *models.Identity, slug string) (*models.Post, error) {
	if caller == nil {
		return nil, apperr.Unauthenticated("")
	}
	p, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizeWrite(caller, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPublished returns one page of the public feed.
func (s *Service) ListPublished(ctx context.Context, req pagination.Request) (pagination.Page[models.Post], error) {
	return s.posts.ListPublished(ctx, req)
}

// ListMine returns caller's own posts in every status. Without pagination
// every post is returned on a single page.
func (s *Service) ListMine(ctx context.Context, caller *models.Identity, req pagination.Request, paginated bool) (pagination.Page[models.Post], error) {
	if caller == nil {
		return pagination.Page[models.Post]{}, apperr.Unauthenticated("")
	}
	if paginated {
		return s.posts.ListByAuthor(ctx, caller.UserID, req)
	}

	posts, err := s.posts.ListAllByAuthor(ctx, caller.UserID)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.NewPage(posts, len(posts), pagination.Request{Page: 1, Limit: len(posts)}), nil
}

// ListByAuthor returns one page of an author's published posts. A
// malformed author id matches nothing.
func (s *Service) ListByAuthor(ctx context.Context, authorID string, req pagination.Request) (pagination.Page[models.Post], error) {
	id, err := uuid.Parse(authorID)
	if err != nil {
		req = pagination.Normalize(req.Page, req.Limit)
		return pagination.NewPage[models.Post](nil, 0, req), nil
	}
	return s.posts.ListPublishedByAuthor(ctx, id, req)
}

// ListAll returns every post caller may read, newest first.
func (s *Service) ListAll(ctx context.Context, caller *models.Identity) ([]models.Post, error) {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return access.FilterReadable(caller, posts), nil
}

// CheckSlugAvailable reports whether no post, in any status, uses slug.
func (s *Service) CheckSlugAvailable(ctx context.Context, slug string) (bool, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return false, apperr.Validation("Slug is required.")
	}
	exists, err := s.posts.SlugExists(ctx, slug)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Bootstrap seeds the example posts and reports how many were inserted.
func (s *Service) Bootstrap(ctx context.Context) (int, error) {
	inserted, err := s.posts.Seed(ctx)
	if err != nil {
		return 0, err
	}
	slog.Info("bootstrap finished", "inserted", inserted)
	return inserted, nil
}
