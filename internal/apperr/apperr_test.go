package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("Title is required."), KindValidation},
		{"slug conflict", SlugConflict(), KindSlugConflict},
		{"not found", NotFound("Blog"), KindNotFound},
		{"forbidden", Forbidden(), KindForbidden},
		{"unauthenticated", Unauthenticated(""), KindUnauthenticated},
		{"unavailable", Unavailable(errors.New("dial tcp: refused")), KindStoreUnavailable},
		{"wrapped", fmt.Errorf("create post: %w", SlugConflict()), KindSlugConflict},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestMessageHidesCause verifies that driver details never reach the
// caller-facing message while still being reachable through Unwrap.
func TestMessageHidesCause(t *testing.T) {
	cause := errors.New(`pq: password authentication failed for user "margin"`)
	err := Unavailable(cause)

	msg := Message(err)
	if strings.Contains(msg, "password authentication") {
		t.Errorf("message leaked cause: %q", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "password authentication") {
		t.Error("expected Error() to include the cause for logs")
	}
}

func TestMessageForUnclassified(t *testing.T) {
	if got := Message(errors.New("raw driver text")); got != "Internal server error." {
		t.Errorf("Message() = %q", got)
	}
}

func TestIs(t *testing.T) {
	if Is(nil, KindNotFound) {
		t.Error("nil error must not match any kind")
	}
	if !Is(NotFound("User"), KindNotFound) {
		t.Error("expected NotFound to match")
	}
	if Is(NotFound("User"), KindForbidden) {
		t.Error("NotFound must not match Forbidden")
	}
}

func TestUnauthenticatedDefaultMessage(t *testing.T) {
	if got := Message(Unauthenticated("")); got != "Authentication required." {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(Unauthenticated("Invalid email or password.")); got != "Invalid email or password." {
		t.Errorf("Message() = %q", got)
	}
}
