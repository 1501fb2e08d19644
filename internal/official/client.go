// Package official talks to the official structured-database API. It defines
// the raw page/block model that API returns, the Client the rest of notionmap
// consumes, and an implementation backed by the jomei/notionapi SDK.
package official

import (
	"context"
	"errors"
)

// Error classes returned by a Client. Implementations wrap them so callers
// can test with errors.Is.
var (
	// ErrNotFound means the object does not exist at the requested
	// granularity (or is not shared with the integration).
	ErrNotFound = errors.New("object not found")

	// ErrValidation means the request was malformed for the target, for
	// example querying a page as a database.
	ErrValidation = errors.New("validation error")

	// ErrSetup means the client cannot be constructed or used at all, for
	// example because the integration token is missing.
	ErrSetup = errors.New("official client setup failed")
)

// Client is the capability set the resolver needs from the official API.
type Client interface {
	// RetrieveObject fetches one page. It fails with ErrNotFound when the id
	// does not exist.
	RetrieveObject(ctx context.Context, id string) (*Page, error)

	// QueryCollection returns up to pageSize rows of a database, in the
	// order the API returns them. It fails with ErrValidation when the id is
	// not a queryable database.
	QueryCollection(ctx context.Context, collectionID string, pageSize int) ([]Page, error)

	// ListChildren returns up to pageSize direct children of a block or
	// page. It fails with ErrNotFound when the target has no children
	// context.
	ListChildren(ctx context.Context, blockID string, pageSize int) ([]Block, error)
}

// PublishedQuerier is implemented by clients that can filter a database to
// published rows sorted by date, newest first.
type PublishedQuerier interface {
	QueryPublished(ctx context.Context, databaseID string, pageSize int) ([]Page, error)
}
