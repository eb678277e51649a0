// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

// FeaturedImage is a reference to an externally hosted image. Only the URL
// is stored; the image itself never passes through the application.
type FeaturedImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// DefaultImageAlt is used when a featured image is supplied without alt text.
const DefaultImageAlt = "Featured image"

// Post is a unit of publishable content addressed by its slug.
type Post struct {
	ID            uuid.UUID      `json:"-"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Content       string         `json:"content"`
	FeaturedImage *FeaturedImage `json:"featuredImage,omitempty"`
	AuthorID      uuid.UUID      `json:"author"`
	AuthorName    string         `json:"authorName,omitempty"`
	Status        PostStatus     `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsOwnedBy reports whether userID is the post's author.
func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && p.AuthorID == userID
}

// PostPatch carries a partial update. Nil fields are left untouched. A
// FeaturedImage with an empty URL removes the image. Authorship is not
// patchable.
type PostPatch struct {
	Title         *string
	Content       *string
	Status        *PostStatus
	FeaturedImage *FeaturedImage
	Slug          *string
}
