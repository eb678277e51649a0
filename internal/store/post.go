// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"themargin/internal/database"
	"themargin/internal/metrics"
	"themargin/internal/models"
	"themargin/internal/pagination"
)

// PostStore handles all post-related database operations.
//
// Slug uniqueness is enforced by the posts_slug_key constraint. Creates and
// renames are single statements, so of two concurrent writers claiming the
// same slug exactly one succeeds and the other gets SlugConflict.
type PostStore struct {
	db          *sql.DB
	seedOnEmpty bool
}

// PostStoreOption configures a PostStore.
type PostStoreOption func(*PostStore)

// WithSeedOnEmpty toggles seeding the example posts when a first-page
// published listing (or the unpaginated listing) finds nothing. Enabled by
// default.
func WithSeedOnEmpty(enabled bool) PostStoreOption {
	return func(s *PostStore) { s.seedOnEmpty = enabled }
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB, opts ...PostStoreOption) *PostStore {
	s := &PostStore{db: db, seedOnEmpty: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// postSelect reads from a relation aliased p joined to its author.
const postSelect = `
	SELECT p.id, p.title, p.slug, p.content, p.featured_image_url, p.featured_image_alt,
		p.author_id, COALESCE(btrim(u.first_name || ' ' || u.last_name), ''),
		p.status, p.created_at, p.updated_at`

const postOrder = ` ORDER BY p.created_at DESC, p.id DESC`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	var imageURL, imageAlt sql.NullString
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &imageURL, &imageAlt,
		&p.AuthorID, &p.AuthorName, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if imageURL.Valid {
		p.FeaturedImage = &models.FeaturedImage{URL: imageURL.String, Alt: imageAlt.String}
	}
	return p, nil
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func imageColumns(img *models.FeaturedImage) (url, alt sql.NullString) {
	if img == nil || img.URL == "" {
		return
	}
	alt = sql.NullString{String: img.Alt, Valid: true}
	if alt.String == "" {
		alt.String = models.DefaultImageAlt
	}
	return sql.NullString{String: img.URL, Valid: true}, alt
}

// Create inserts a new post and returns it with its author's display name.
// An empty status is stored as DRAFT.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (_ *models.Post, err error) {
	defer observe("post_create", time.Now(), &err)

	status := p.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	imageURL, imageAlt := imageColumns(p.FeaturedImage)

	row := s.db.QueryRowContext(ctx, `
		WITH p AS (
			INSERT INTO posts (title, slug, content, featured_image_url, featured_image_alt, author_id, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)`+postSelect+`
		FROM p LEFT JOIN users u ON u.id = p.author_id
	`, p.Title, p.Slug, p.Content, imageURL, imageAlt, p.AuthorID, status)
	return scanPost(row)
}

// FindBySlug retrieves a post by slug regardless of status. Returns nil if
// not found. Visibility is the caller's concern.
func (s *PostStore) FindBySlug(ctx context.Context, slug string) (_ *models.Post, err error) {
	defer observe("post_find_by_slug", time.Now(), &err)

	p, err := scanPost(s.db.QueryRowContext(ctx,
		postSelect+` FROM posts p LEFT JOIN users u ON u.id = p.author_id WHERE p.slug = $1`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// Update applies the fields present in patch to the post identified by slug
// and owned by authorID, and bumps updated_at. A rename is part of the same
// statement. Returns nil if no such post exists.
func (s *PostStore) Update(ctx context.Context, slug string, authorID uuid.UUID, patch models.PostPatch) (_ *models.Post, err error) {
	defer observe("post_update", time.Now(), &err)

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.Slug != nil {
		set("slug", *patch.Slug)
	}
	if patch.FeaturedImage != nil {
		imageURL, imageAlt := imageColumns(patch.FeaturedImage)
		set("featured_image_url", imageURL)
		set("featured_image_alt", imageAlt)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, slug, authorID)

	query := fmt.Sprintf(`
		WITH p AS (
			UPDATE posts SET %s
			WHERE slug = $%d AND author_id = $%d
			RETURNING *
		)`+postSelect+`
		FROM p LEFT JOIN users u ON u.id = p.author_id
	`, strings.Join(sets, ", "), len(args)-1, len(args))

	p, err := scanPost(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// Delete removes the post identified by slug and owned by authorID and
// returns its final state. Returns nil if no such post exists.
func (s *PostStore) Delete(ctx context.Context, slug string, authorID uuid.UUID) (_ *models.Post, err error) {
	defer observe("post_delete", time.Now(), &err)

	p, err := scanPost(s.db.QueryRowContext(ctx, `
		WITH p AS (
			DELETE FROM posts WHERE slug = $1 AND author_id = $2
			RETURNING *
		)`+postSelect+`
		FROM p LEFT JOIN users u ON u.id = p.author_id
	`, slug, authorID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// ListPublished returns one page of published posts, newest first. When the
// first page finds no published posts at all and seeding on empty is
// enabled, the example posts are seeded and the page is read again.
func (s *PostStore) ListPublished(ctx context.Context, req pagination.Request) (_ pagination.Page[models.Post], err error) {
	defer observe("post_list_published", time.Now(), &err)

	req = pagination.Normalize(req.Page, req.Limit)
	where := `p.status = 'PUBLISHED'`

	page, err := s.listPage(ctx, where, nil, req)
	if err != nil || page.Total > 0 || req.Page != 1 || !s.seedOnEmpty {
		return page, err
	}
	if _, err := s.Seed(ctx); err != nil {
		return page, err
	}
	return s.listPage(ctx, where, nil, req)
}

// ListByAuthor returns one page of the author's posts in every status.
func (s *PostStore) ListByAuthor(ctx context.Context, authorID uuid.UUID, req pagination.Request) (_ pagination.Page[models.Post], err error) {
	defer observe("post_list_by_author", time.Now(), &err)
	return s.listPage(ctx, `p.author_id = $1`, []any{authorID}, pagination.Normalize(req.Page, req.Limit))
}

// ListPublishedByAuthor returns one page of the author's published posts.
func (s *PostStore) ListPublishedByAuthor(ctx context.Context, authorID uuid.UUID, req pagination.Request) (_ pagination.Page[models.Post], err error) {
	defer observe("post_list_published_by_author", time.Now(), &err)
	return s.listPage(ctx, `p.author_id = $1 AND p.status = 'PUBLISHED'`, []any{authorID},
		pagination.Normalize(req.Page, req.Limit))
}

// ListAll returns every post in every status, newest first. When the
// collection is empty and seeding on empty is enabled, the example posts are
// seeded first.
func (s *PostStore) ListAll(ctx context.Context) (_ []models.Post, err error) {
	defer observe("post_list_all", time.Now(), &err)

	posts, err := s.listAll(ctx, "", nil)
	if err != nil || len(posts) > 0 || !s.seedOnEmpty {
		return posts, err
	}
	if _, err := s.Seed(ctx); err != nil {
		return nil, err
	}
	return s.listAll(ctx, "", nil)
}

// ListAllByAuthor returns every post the author owns, newest first.
func (s *PostStore) ListAllByAuthor(ctx context.Context, authorID uuid.UUID) (_ []models.Post, err error) {
	defer observe("post_list_all_by_author", time.Now(), &err)
	return s.listAll(ctx, `p.author_id = $1`, []any{authorID})
}

// CountPublishedByAuthor counts the author's published posts.
func (s *PostStore) CountPublishedByAuthor(ctx context.Context, authorID uuid.UUID) (_ int, err error) {
	defer observe("post_count_published_by_author", time.Now(), &err)

	var count int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE author_id = $1 AND status = 'PUBLISHED'`, authorID,
	).Scan(&count)
	return count, err
}

// SlugExists reports whether any post, in any status, uses slug.
func (s *PostStore) SlugExists(ctx context.Context, slug string) (_ bool, err error) {
	defer observe("post_slug_exists", time.Now(), &err)

	var exists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug,
	).Scan(&exists)
	return exists, err
}

// Seed inserts the example posts in one transaction and returns how many
// were new. Posts whose slug already exists are skipped, so concurrent or
// repeated calls never duplicate.
func (s *PostStore) Seed(ctx context.Context) (_ int, err error) {
	defer observe("post_seed", time.Now(), &err)

	inserted, err := database.Seed(ctx, s.db)
	if err != nil {
		return 0, err
	}
	metrics.SeededPostsTotal.Add(float64(inserted))
	return inserted, nil
}

// listPage reads the count and the page inside one read-only repeatable
// read transaction so the total describes the same snapshot as the items.
func (s *PostStore) listPage(ctx context.Context, where string, args []any, req pagination.Request) (pagination.Page[models.Post], error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return pagination.Page[models.Post]{}, fmt.Errorf("begin list: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p WHERE `+where, args...).Scan(&total); err != nil {
		return pagination.Page[models.Post]{}, fmt.Errorf("count posts: %w", err)
	}

	pageArgs := make([]any, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, req.Limit, req.Offset())
	query := fmt.Sprintf(`%s FROM posts p LEFT JOIN users u ON u.id = p.author_id WHERE %s%s LIMIT $%d OFFSET $%d`,
		postSelect, where, postOrder, len(pageArgs)-1, len(pageArgs))

	posts, err := queryPosts(ctx, tx, query, pageArgs...)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	if err := tx.Commit(); err != nil {
		return pagination.Page[models.Post]{}, fmt.Errorf("commit list: %w", err)
	}
	return pagination.NewPage(posts, total, req), nil
}

func (s *PostStore) listAll(ctx context.Context, where string, args []any) ([]models.Post, error) {
	query := postSelect + ` FROM posts p LEFT JOIN users u ON u.id = p.author_id`
	if where != "" {
		query += ` WHERE ` + where
	}
	return queryPosts(ctx, s.db, query+postOrder, args...)
}

func queryPosts(ctx context.Context, q queryer, query string, args ...any) ([]models.Post, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return scanPosts(rows)
}
