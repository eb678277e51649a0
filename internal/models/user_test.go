package models

import "testing"

// TestUserDisplayName verifies first and last names are joined and trimmed.
func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{name: "both names", first: "Ada", last: "Lovelace", want: "Ada Lovelace"},
		{name: "missing last name", first: "Ada", last: "", want: "Ada"},
		{name: "missing first name", first: "", last: "Lovelace", want: "Lovelace"},
		{name: "both empty", first: "", last: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{FirstName: tt.first, LastName: tt.last}
			if got := u.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsReservedEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"sample-author-1@seed.invalid", true},
		{"someone@SEED.INVALID", true},
		{"ada@example.com", false},
		{"seed.invalid@example.com", false},
		{"no-at-sign", false},
	}
	for _, tt := range tests {
		if got := IsReservedEmail(tt.email); got != tt.want {
			t.Errorf("IsReservedEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
