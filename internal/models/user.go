// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered author account.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	CreatedAt    time.Time `json:"createdAt"`
}

// DisplayName returns "First Last" with surrounding whitespace trimmed.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ReservedEmailDomain holds the synthetic authors of the example posts.
// Nobody can sign up with an address in it.
const ReservedEmailDomain = "seed.invalid"

// IsReservedEmail reports whether email belongs to ReservedEmailDomain.
func IsReservedEmail(email string) bool {
	at := strings.LastIndexByte(email, '@')
	return at >= 0 && strings.EqualFold(email[at+1:], ReservedEmailDomain)
}

// Identity is the resolved caller of a request. A nil *Identity means the
// caller is anonymous.
type Identity struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
}

// Profile is the public view of an author together with their published
// post count.
type Profile struct {
	User
	PostsCount int `json:"postsCount"`
}
