// Package account registers and authenticates users and assembles public
// author profiles.
package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"themargin/internal/apperr"
	"themargin/internal/auth"
	"themargin/internal/models"
	"themargin/internal/validation"
)

// UserStore is the persistence the service needs. *store.UserStore
// satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// PostCounter counts an author's published posts. *store.PostStore
// satisfies it.
type PostCounter interface {
	CountPublishedByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
}

// PasswordHasher hashes and verifies passwords. *auth.Hasher satisfies it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashed, password string) error
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"notblank,max=100"`
	LastName  string `json:"lastName" validate:"notblank,max=100"`
	Email     string `json:"email" validate:"notblank,email,max=254"`
	Password  string `json:"password" validate:"required,max=72"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

const (
	msgMissingFields      = "Missing required fields"
	msgInvalidCredentials = "Invalid email or password."
	msgReservedEmail      = "Email address is not available."
)

// Service implements the account operations.
type Service struct {
	users  UserStore
	posts  PostCounter
	hasher PasswordHasher
}

// NewService wires a Service.
func NewService(users UserStore, posts PostCounter, hasher PasswordHasher) *Service {
	return &Service{users: users, posts: posts, hasher: hasher}
}

// normalizeEmail trims surrounding whitespace. Case is preserved: addresses
// are unique exactly as stored.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// Register creates a user. Duplicate emails are rejected with the message
// "User already exists".
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)

	if err := checkInput(in); err != nil {
		return nil, err
	}
	if models.IsReservedEmail(in.Email) {
		return nil, apperr.Validation(msgReservedEmail)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return s.users.Create(ctx, &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hashed,
	})
}

// Authenticate checks credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := checkInput(in); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Unauthenticated(msgInvalidCredentials)
	}

	if err := s.hasher.Verify(u.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return nil, apperr.Unauthenticated(msgInvalidCredentials)
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}

// Lookup returns the user with the given id, or nil. Malformed ids are
// treated as absent.
func (s *Service) Lookup(ctx context.Context, id string) (*models.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return s.users.FindByID(ctx, userID)
}

// Profile returns the user with their published post count. The user and
// the count are fetched concurrently.
func (s *Service) Profile(ctx context.Context, id string) (*models.Profile, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("User")
	}

	var (
		user  *models.User
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.FindByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.posts.CountPublishedByAuthor(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}

	return &models.Profile{User: *user, PostsCount: count}, nil
}

// checkInput validates a payload. Any missing field reports the generic
// missing-fields message; other failures name the field.
func checkInput(in any) error {
	return validation.Check(in, msgMissingFields)
}
