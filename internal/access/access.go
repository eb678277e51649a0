// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package access decides what a caller may do with a post. All functions
// are pure: they look only at the caller identity and the post as stored.
// A nil caller is an anonymous visitor.
package access

import (
	"themargin/internal/apperr"
	"themargin/internal/models"
)

// Decision is the outcome of evaluating a caller against a post.
type Decision int

const (
	Deny Decision = iota
	AllowRead
	AllowWrite // implies read
)

// Decide returns the strongest access the caller has to post.
func Decide(caller *models.Identity, post *models.Post) Decision {
	if post == nil {
		return Deny
	}
	if caller != nil && post.IsOwnedBy(caller.UserID) {
		return AllowWrite
	}
	if post.IsPublished() {
		return AllowRead
	}
	return Deny
}

// CanRead reports whether the caller may see post.
func CanRead(caller *models.Identity, post *models.Post) bool {
	return Decide(caller, post) != Deny
}

// CanWrite reports whether the caller may update or delete post.
func CanWrite(caller *models.Identity, post *models.Post) bool {
	return Decide(caller, post) == AllowWrite
}

// AuthorizeRead returns NotFound when the caller may not see post, so that
// private drafts are indistinguishable from missing posts.
func AuthorizeRead(caller *models.Identity, post *models.Post) error {
	if !CanRead(caller, post) {
		return apperr.NotFound("Blog")
	}
	return nil
}

// AuthorizeWrite returns Unauthenticated for anonymous callers and
// Forbidden for authenticated callers who are not the author.
func AuthorizeWrite(caller *models.Identity, post *models.Post) error {
	if caller == nil {
		return apperr.Unauthenticated("")
	}
	if post == nil {
		return apperr.NotFound("Blog")
	}
	if !CanWrite(caller, post) {
		return apperr.Forbidden()
	}
	return nil
}

// FilterReadable returns the posts the caller may see, preserving order.
func FilterReadable(caller *models.Identity, posts []models.Post) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for i := range posts {
		if CanRead(caller, &posts[i]) {
			out = append(out, posts[i])
		}
	}
	return out
}
