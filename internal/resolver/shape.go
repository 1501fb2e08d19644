package resolver

import (
	"context"
	"errors"

	"github.com/mesh-intelligence/notionmap/internal/assemble"
	"github.com/mesh-intelligence/notionmap/internal/ident"
	"github.com/mesh-intelligence/notionmap/internal/official"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// shape is what an official-source resolution found: a database result set
// or a single page with its blocks.
type shape interface {
	assemble() *types.RecordMap
}

type databaseShape struct {
	pages        []official.Page
	collectionID string
}

func (s databaseShape) assemble() *types.RecordMap {
	return assemble.FromDatabase(s.pages, s.collectionID)
}

type pageShape struct {
	page   *official.Page
	blocks []official.Block
	pageID string
}

func (s pageShape) assemble() *types.RecordMap {
	return assemble.FromPage(s.page, s.blocks, s.pageID)
}

// resolveShape runs the official tiers for a canonical id: the root database
// query, direct page retrieval, then a search of the root database. A root
// that is a page rather than a database goes straight to page retrieval. A
// nil shape with a nil error is a miss.
func (r *Resolver) resolveShape(ctx context.Context, c official.Client, id string) (shape, error) {
	isRoot := r.rootID != "" && ident.Equal(id, r.rootID)
	if isRoot {
		pages, err := c.QueryCollection(ctx, r.rootID, r.cfg.EffectivePageSize())
		switch {
		case err == nil:
			return databaseShape{pages: pages, collectionID: id}, nil
		case errors.Is(err, official.ErrValidation):
			r.logger.DebugContext(ctx, "root is not a database, retrieving it as a page", "id", id)
		default:
			return nil, err
		}
	}

	page, err := c.RetrieveObject(ctx, id)
	if err == nil {
		return r.pageShape(ctx, c, page, id)
	}
	if !errors.Is(err, official.ErrNotFound) {
		return nil, err
	}

	if r.rootID == "" || isRoot {
		return nil, nil
	}
	pages, err := c.QueryCollection(ctx, r.rootID, r.cfg.EffectivePageSize())
	if errors.Is(err, official.ErrNotFound) || errors.Is(err, official.ErrValidation) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range pages {
		if ident.Equal(pages[i].ID, id) {
			r.logger.DebugContext(ctx, "page found by root database search", "id", id)
			return r.pageShape(ctx, c, &pages[i], id)
		}
	}
	return nil, nil
}

// pageShape fetches the block tree of a page. A page without a children
// context has no blocks.
func (r *Resolver) pageShape(ctx context.Context, c official.Client, page *official.Page, id string) (shape, error) {
	blocks, err := r.walker(c).Fetch(ctx, id)
	if errors.Is(err, official.ErrNotFound) {
		blocks, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pageShape{page: page, blocks: blocks, pageID: id}, nil
}
