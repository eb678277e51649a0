// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"themargin/internal/models"
)

// ExamplePostCount is the number of example posts seedExamples maintains.
const ExamplePostCount = 5

// ErrExampleAuthorTaken is returned when an example author's address
// belongs to an account that can log in.
var ErrExampleAuthorTaken = errors.New("example author address belongs to a real account")

// unusablePasswordHash never verifies against bcrypt, so example authors
// cannot log in.
const unusablePasswordHash = "!"

// ExampleAuthorEmail returns the address of the n-th synthetic author.
func ExampleAuthorEmail(n int) string {
	return fmt.Sprintf("sample-author-%d@%s", n, models.ReservedEmailDomain)
}

// ExampleSlug returns the slug of the n-th example post (1-based).
func ExampleSlug(n int) string {
	return fmt.Sprintf("blog-%d", n)
}

// seedExamples inserts the example posts, each owned by its own synthetic
// author, inside the caller's transaction. Existing rows are matched by slug
// and author email and left untouched, so running it again, or from two
// processes at once, never duplicates anything. It returns the number of
// posts actually inserted.
//
// Creation times are staggered one second apart so that the last example
// sorts first in newest-first listings.
func seedExamples(ctx context.Context, tx *sql.Tx) (int, error) {
	now := time.Now().UTC().Truncate(time.Second)
	inserted := 0

	for n := 1; n <= ExamplePostCount; n++ {
		var authorID string
		// DO UPDATE with an identity assignment so RETURNING yields the
		// existing row on conflict. Only a row that still carries the
		// unusable hash is reused; a login-capable account is never adopted.
		err := tx.QueryRowContext(ctx, `
			INSERT INTO users (first_name, last_name, email, password_hash)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
			WHERE users.password_hash = EXCLUDED.password_hash
			RETURNING id
		`, "Sample", fmt.Sprintf("Author %d", n),
			ExampleAuthorEmail(n), unusablePasswordHash,
		).Scan(&authorID)
		if errors.Is(err, sql.ErrNoRows) {
			return inserted, fmt.Errorf("seed example author %d: %w", n, ErrExampleAuthorTaken)
		}
		if err != nil {
			return inserted, fmt.Errorf("seed example author %d: %w", n, err)
		}

		createdAt := now.Add(time.Duration(n-ExamplePostCount) * time.Second)
		res, err := tx.ExecContext(ctx, `
			INSERT INTO posts (title, slug, content, author_id, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 'PUBLISHED', $5, $5)
			ON CONFLICT (slug) DO NOTHING
		`, fmt.Sprintf("Blog %d", n), ExampleSlug(n),
			fmt.Sprintf("This is the content of blog %d.", n), authorID, createdAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed example post %d: %w", n, err)
		}
		if rows, _ := res.RowsAffected(); rows > 0 {
			inserted++
		}
	}

	if inserted > 0 {
		slog.Info("example posts seeded", "inserted", inserted)
	}
	return inserted, nil
}

// Seed runs seedExamples in its own transaction. store.PostStore.Seed goes
// through it for both the explicit bootstrap and the empty-listing fallback.
func Seed(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	inserted, err := seedExamples(ctx, tx)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed commit: %w", err)
	}
	return inserted, nil
}
