// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the error kinds returned across package boundaries.
// Every failure that leaves a store or service is one of these kinds and
// carries a short, stable message safe to show to callers. The wrapped cause
// is kept for logging only.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of storage or transport.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindSlugConflict
	KindNotFound
	KindForbidden
	KindUnauthenticated
	KindStoreUnavailable
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindSlugConflict:
		return "slug_conflict"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "internal"
	}
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// SlugConflict reports a uniqueness violation on create or rename.
func SlugConflict() error {
	return &Error{Kind: KindSlugConflict, Message: "Slug already in use."}
}

// NotFound reports a missing (or invisible) resource.
func NotFound(resource string) error {
	return &Error{Kind: KindNotFound, Message: resource + " not found."}
}

// Forbidden reports an authenticated caller writing a resource it does not own.
func Forbidden() error {
	return &Error{Kind: KindForbidden, Message: "Not authorized."}
}

// Unauthenticated reports a missing or invalid caller identity.
func Unauthenticated(message string) error {
	if message == "" {
		message = "Authentication required."
	}
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Unavailable wraps a storage failure. The cause is never shown to callers.
func Unavailable(err error) error {
	return &Error{Kind: KindStoreUnavailable, Message: "Service temporarily unavailable.", Err: err}
}

// Internal wraps an unexpected failure.
func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "Internal server error.", Err: err}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the caller-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error."
}
