// Package cpe normalizes free-form inventory strings into CPE 2.3 tokens and
// builds formatted CPE identifiers from them.
package cpe

import (
	"strings"
	"unicode"
)

// Fallback literals used when a field is missing from a component.
const (
	UnknownVendor  = "unknown_vendor"
	UnknownProduct = "unknown_product"
	UnknownVersion = "unknown_version"
)

// Sanitize collapses every whitespace run in raw to a single underscore and
// then drops every character that is not an ASCII letter, digit, '_', '-',
// '.', or one of allowedExtra.
//
// The result is stable: Sanitize(Sanitize(x, e), e) == Sanitize(x, e).
func Sanitize(raw string, allowedExtra string) string {
	var b strings.Builder
	b.Grow(len(raw))

	inSpace := false
	for _, r := range raw {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
				inSpace = true
			}
			continue
		}
		inSpace = false
		if allowed(r) || strings.ContainsRune(allowedExtra, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '.':
		return true
	}
	return false
}

// SanitizeOr sanitizes raw, returning fallback when raw is empty or when
// nothing survives sanitization.
func SanitizeOr(raw, fallback, allowedExtra string) string {
	if raw == "" {
		return fallback
	}
	if s := Sanitize(raw, allowedExtra); s != "" {
		return s
	}
	return fallback
}
