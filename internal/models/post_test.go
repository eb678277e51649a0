package models

import (
	"testing"

	"github.com/google/uuid"
)

// TestPostIsPublished verifies that IsPublished returns true only for
// the "PUBLISHED" status.
func TestPostIsPublished(t *testing.T) {
	tests := []struct {
		name   string
		status PostStatus
		want   bool
	}{
		{name: "published", status: PostStatusPublished, want: true},
		{name: "draft", status: PostStatusDraft, want: false},
		{name: "empty status", status: PostStatus(""), want: false},
		{name: "lowercase published", status: PostStatus("published"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Status: tt.status}
			if got := p.IsPublished(); got != tt.want {
				t.Errorf("Post{Status: %q}.IsPublished() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestPostIsOwnedBy(t *testing.T) {
	author := uuid.New()
	p := &Post{AuthorID: author}

	if !p.IsOwnedBy(author) {
		t.Error("expected author to own the post")
	}
	if p.IsOwnedBy(uuid.New()) {
		t.Error("expected another user not to own the post")
	}
	if p.IsOwnedBy(uuid.Nil) {
		t.Error("nil id must never own a post")
	}
}
