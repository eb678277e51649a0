// Package session provides Valkey-backed HTTP session management.
// The browser holds a signed JWT in the auth_token cookie; the token's ID
// names a session record stored as JSON in Valkey with automatic TTL expiry.
// A token is only honored while its record exists, so logout revokes it.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"themargin/internal/auth"
	"themargin/internal/models"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "auth_token"

	// CookieMaxAge is how long the browser keeps the cookie. The token inside
	// expires earlier, after the session TTL.
	CookieMaxAge = 7 * 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data holds the session payload stored in Valkey.
type Data struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	tokens *auth.TokenManager
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// Records live as long as the tokens issued by tokens. secure marks the
// cookie Secure and should be set everywhere but local development.
func NewStore(client *redis.Client, tokens *auth.TokenManager, secure bool) *Store {
	return &Store{
		client: client,
		tokens: tokens,
		secure: secure,
	}
}

// Create starts a session for identity, stores it in Valkey, and sets the
// session cookie on the response. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, identity *models.Identity) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	payload, err := json.Marshal(&Data{
		UserID:    identity.UserID,
		Email:     identity.Email,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	token, _, err := s.tokens.Issue(identity.UserID, identity.Email, id)
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.tokens.TTL()).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(CookieMaxAge.Seconds()),
	})

	return id, nil
}

// Get resolves the caller identity from the request cookie. Returns nil if
// there is no cookie, the token is invalid or expired, or the session was
// destroyed.
func (s *Store) Get(ctx context.Context, r *http.Request) (*models.Identity, error) {
	claims := s.claims(r)
	if claims == nil {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+claims.ID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Session expired or revoked
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}

	// The record is authoritative; a token for another user is not honored.
	if userID, _ := claims.UserID(); userID != data.UserID {
		return nil, nil
	}

	return &models.Identity{UserID: data.UserID, Email: data.Email}, nil
}

// Destroy removes the session from Valkey and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if _, err := r.Cookie(CookieName); err != nil {
		return nil // No cookie, nothing to destroy
	}

	if claims := s.claims(r); claims != nil {
		if err := s.client.Del(ctx, keyPrefix+claims.ID).Err(); err != nil {
			return fmt.Errorf("session destroy: %w", err)
		}
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	return nil
}

// claims returns the validated token claims from the request, or nil.
func (s *Store) claims(r *http.Request) *auth.Claims {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := s.tokens.Parse(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
