// Package cache stores record maps between resolutions. It provides the
// in-memory and redis stores, the key scheme, and the clear actions; the
// on-disk store lives in internal/sqlite.
package cache

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mesh-intelligence/notionmap/internal/ident"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// Key prefixes.
const (
	PageContentPrefix = "page_content_"
	SiteDataPrefix    = "site_data_"
)

// PageContentKey is the key a resolved record map is stored under.
func PageContentKey(id string) string {
	return PageContentPrefix + id
}

// SiteDataKey is the key site-wide data derived from root id is stored under.
func SiteDataKey(rootID string) string {
	return SiteDataPrefix + rootID
}

// keyID is the canonical form of id, or id itself when it does not
// canonicalize, so dashed, undashed, and URL forms share one entry.
func keyID(id string) string {
	if canonical, ok := ident.Canonicalize(id); ok {
		return canonical
	}
	return id
}

// ValidateKey rejects empty keys and keys containing whitespace or control
// characters.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", types.ErrInvalidKey)
	}
	if strings.IndexFunc(key, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return fmt.Errorf("%w: %q", types.ErrInvalidKey, key)
	}
	return nil
}
