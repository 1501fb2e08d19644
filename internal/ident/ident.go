// Package ident validates and canonicalizes content-object identifiers.
//
// An identifier is 32 hexadecimal digits. The official API renders it in
// 8-4-4-4-12 groups separated by dashes; URLs and the legacy API often drop
// the dashes or embed the identifier in a slug.
package ident

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	canonicalPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	embeddedPattern  = regexp.MustCompile(`[0-9a-fA-F]{8}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{12}`)
	nonIDChars       = regexp.MustCompile(`[^0-9a-fA-F-]`)
)

// IsValid reports whether s is exactly 32 hexadecimal digits once dashes are
// removed, or already matches the dashed 8-4-4-4-12 pattern.
func IsValid(s string) bool {
	if canonicalPattern.MatchString(s) {
		return true
	}
	return isHex32(Compact(s))
}

// Canonicalize extracts an identifier from s and renders it in lower-case
// 8-4-4-4-12 form. Characters outside [0-9a-fA-F-] are stripped first; if
// that does not leave a valid identifier, the first 32-digit run (dashes
// allowed at the group boundaries) anywhere in s is used. It returns false
// when no identifier can be recovered.
func Canonicalize(s string) (string, bool) {
	cleaned := nonIDChars.ReplaceAllString(s, "")
	if IsValid(cleaned) {
		return format(Compact(cleaned))
	}
	m := embeddedPattern.FindString(s)
	if m == "" {
		return "", false
	}
	return format(Compact(m))
}

// Compact removes every dash from s and lower-cases it.
func Compact(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", ""))
}

// Equal reports whether a and b name the same identifier, ignoring dashes
// and case.
func Equal(a, b string) bool {
	return Compact(a) == Compact(b)
}

func format(hex32 string) (string, bool) {
	if !isHex32(hex32) {
		return "", false
	}
	u, err := uuid.Parse(hex32)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func isHex32(s string) bool {
	if len(s) != 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
