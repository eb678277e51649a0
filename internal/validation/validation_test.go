package validation

import (
	"testing"

	"themargin/internal/apperr"
)

type image struct {
	URL string `json:"url" validate:"required,http_url"`
}

type input struct {
	Title  string  `json:"title" validate:"notblank,max=10"`
	Email  string  `json:"email" validate:"omitempty,email"`
	Status *string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	Image  *image  `json:"featuredImage"`
}

func ptr(s string) *string { return &s }

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      input
		wantMsg string
	}{
		{"valid", input{Title: "ok"}, ""},
		{"blank title", input{Title: "   "}, "title is required."},
		{"title too long", input{Title: "0123456789x"}, "title must be at most 10 characters long."},
		{"bad email", input{Title: "ok", Email: "nope"}, "email must be a valid email."},
		{"bad status", input{Title: "ok", Status: ptr("ARCHIVED")}, "status must be one of: DRAFT, PUBLISHED."},
		{"nil nested", input{Title: "ok"}, ""},
		{"bad nested url", input{Title: "ok", Image: &image{URL: "not a url"}}, "url must be a valid URL."},
		{"good nested url", input{Title: "ok", Image: &image{URL: "https://img.example/x.png"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("got %v, want validation error", err)
			}
			if got := apperr.Message(err); got != tt.wantMsg {
				t.Errorf("message: got %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestCheckMissing(t *testing.T) {
	err := Check(input{Title: " ", Email: "nope"}, "Missing required fields.")
	if got := apperr.Message(err); got != "Missing required fields." {
		t.Errorf("message: got %q", got)
	}

	// Non-presence failures keep their field message.
	err = Check(input{Title: "ok", Email: "nope"}, "Missing required fields.")
	if got := apperr.Message(err); got != "email must be a valid email." {
		t.Errorf("message: got %q", got)
	}
}
