// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings
// and the syntax rules every stored slug must satisfy.
package slug

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"themargin/internal/apperr"
)

// MaxLength is the longest slug accepted.
const MaxLength = 300

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, whitespace, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespaceRuns collapses any run of whitespace into one hyphen.
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// pattern is the accepted slug syntax: lowercase alphanumeric runs
	// separated by single hyphens.
	pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
// The result is either empty or satisfies Valid.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespaceRuns.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Valid reports whether s is an acceptable slug.
func Valid(s string) bool {
	return utf8.RuneCountInString(s) <= MaxLength && pattern.MatchString(s)
}

// Resolve picks the slug for a new or renamed post. A non-empty requested
// slug is used verbatim and must already be valid; it is never rewritten.
// Otherwise the slug is derived from title.
func Resolve(requested, title string) (string, error) {
	if s := strings.TrimSpace(requested); s != "" {
		if !Valid(s) {
			return "", apperr.Validation("Invalid slug format.")
		}
		return s, nil
	}

	derived := Generate(title)
	if derived == "" {
		return "", apperr.Validation("A slug could not be derived from the title.")
	}
	if !Valid(derived) {
		return "", apperr.Validation("Invalid slug format.")
	}
	return derived, nil
}
