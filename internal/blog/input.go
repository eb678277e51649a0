// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"strings"

	"themargin/internal/apperr"
	"themargin/internal/models"
	"themargin/internal/slug"
	"themargin/internal/validation"
)

const msgMissingFields = "Missing required fields."

// ImageInput is a featured image in a create or update payload. On create an
// image without a URL is ignored; on update it removes the current image.
type ImageInput struct {
	URL string `json:"url" validate:"required,http_url,max=2048"`
	Alt string `json:"alt" validate:"max=300"`
}

// CreateInput is the payload for a new post.
type CreateInput struct {
	Title         string            `json:"title" validate:"notblank,max=300"`
	Content       string            `json:"content" validate:"notblank,max=100000"`
	Slug          string            `json:"slug" validate:"max=300"`
	Status        models.PostStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	FeaturedImage *ImageInput       `json:"featuredImage"`
}

// UpdateInput is a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title         *string            `json:"title" validate:"omitempty,notblank,max=300"`
	Content       *string            `json:"content" validate:"omitempty,notblank,max=100000"`
	Status        *models.PostStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	FeaturedImage *ImageInput        `json:"featuredImage"`
	Slug          *string            `json:"slug" validate:"omitempty,max=300"`
}

func normalizeImage(img *ImageInput) *ImageInput {
	if img == nil || strings.TrimSpace(img.URL) == "" {
		return nil
	}
	return &ImageInput{URL: strings.TrimSpace(img.URL), Alt: strings.TrimSpace(img.Alt)}
}

func (img *ImageInput) model() *models.FeaturedImage {
	if img == nil {
		return nil
	}
	alt := img.Alt
	if alt == "" {
		alt = models.DefaultImageAlt
	}
	return &models.FeaturedImage{URL: img.URL, Alt: alt}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// post validates the input and builds the post to insert.
func (in CreateInput) post(author *models.Identity) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.FeaturedImage = normalizeImage(in.FeaturedImage)

	if err := validation.Check(in, msgMissingFields); err != nil {
		return nil, err
	}

	resolved, err := slug.Resolve(in.Slug, in.Title)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	return &models.Post{
		Title:         in.Title,
		Slug:          resolved,
		Content:       in.Content,
		FeaturedImage: in.FeaturedImage.model(),
		AuthorID:      author.UserID,
		Status:        status,
	}, nil
}

// patch validates the input and builds the field patch.
func (in UpdateInput) patch() (models.PostPatch, error) {
	in.Title = trimmed(in.Title)
	in.Content = trimmed(in.Content)
	in.Slug = trimmed(in.Slug)
	if in.Slug != nil && *in.Slug == "" {
		in.Slug = nil
	}
	clearImage := in.FeaturedImage != nil && strings.TrimSpace(in.FeaturedImage.URL) == ""
	in.FeaturedImage = normalizeImage(in.FeaturedImage)

	if err := validation.Struct(in); err != nil {
		return models.PostPatch{}, err
	}
	if in.Slug != nil && !slug.Valid(*in.Slug) {
		return models.PostPatch{}, apperr.Validation("Invalid slug format.")
	}

	patch := models.PostPatch{
		Title:         in.Title,
		Content:       in.Content,
		Status:        in.Status,
		FeaturedImage: in.FeaturedImage.model(),
		Slug:          in.Slug,
	}
	if clearImage {
		patch.FeaturedImage = &models.FeaturedImage{}
	}
	return patch, nil
}
