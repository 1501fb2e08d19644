package resolver

import (
	"context"
	"errors"
	"slices"
	"sort"

	"github.com/mesh-intelligence/notionmap/internal/assemble"
	"github.com/mesh-intelligence/notionmap/internal/ident"
	"github.com/mesh-intelligence/notionmap/internal/official"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// ErrNoRoot is returned by PageIDs when no root database is configured.
var ErrNoRoot = errors.New("no root database configured")

// GetBlocks looks up blocks by id. Invalid ids are skipped. If the
// placeholder id is among the inputs the result is empty.
func (r *Resolver) GetBlocks(ctx context.Context, ids []string) (*types.RecordMap, error) {
	ctx, span := r.tracer.Start(ctx, "resolver.get_blocks")
	defer span.End()

	if slices.Contains(ids, types.PlaceholderID) {
		r.logger.DebugContext(ctx, "placeholder id among block ids, returning empty record map")
		return types.NewRecordMap(), nil
	}
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		canonical, ok := ident.Canonicalize(id)
		if !ok {
			r.logger.DebugContext(ctx, "skipping invalid block id", "id", id)
			continue
		}
		valid = append(valid, canonical)
	}

	h := r.source(ctx)
	if h.official != nil {
		m, err := r.officialBlocks(ctx, h.official, valid)
		if err == nil || !errors.Is(err, official.ErrSetup) {
			return m, err
		}
		h = r.demote(ctx, h, err)
	}
	return h.legacy.GetBlocks(ctx, valid)
}

func (r *Resolver) officialBlocks(ctx context.Context, c official.Client, ids []string) (*types.RecordMap, error) {
	m := types.NewRecordMap()
	for _, id := range ids {
		children, err := c.ListChildren(ctx, id, r.cfg.EffectivePageSize())
		if err != nil {
			return nil, err
		}
		m.Merge(assemble.FromChildren(children, id))
	}
	return m, nil
}

// PageIDs lists the pages of the root database. The official source asks
// for published pages, newest first; if that is unsupported or fails, the
// ids are read from the root record map.
func (r *Resolver) PageIDs(ctx context.Context) ([]string, error) {
	if r.rootID == "" {
		return nil, ErrNoRoot
	}
	h := r.source(ctx)
	if pq, ok := h.official.(official.PublishedQuerier); ok {
		pages, err := pq.QueryPublished(ctx, r.rootID, r.cfg.EffectivePageSize())
		if err == nil {
			ids := make([]string, 0, len(pages))
			for _, p := range pages {
				ids = append(ids, p.ID)
			}
			return ids, nil
		}
		r.logger.WarnContext(ctx, "published query failed, reading ids from record map", "error", err)
	}

	m, err := r.GetRecordMap(ctx, r.rootID)
	if err != nil {
		return nil, err
	}
	return pageIDsFromRecordMap(m, r.rootID, r.cfg.ViewIndex), nil
}

// pageIDsFromRecordMap finds the collection behind the root node and lists
// its pages. Without a usable root node the first collection with query
// results is used.
func pageIDsFromRecordMap(m *types.RecordMap, rootID string, viewIndex int) []string {
	if root, ok := m.Node(rootID); ok && root.CollectionID != "" {
		return m.PageIDs(root.CollectionID, root.ViewIDs, viewIndex)
	}
	for _, id := range sortedKeys(m.Block) {
		if n, ok := m.Node(id); ok && n.CollectionID != "" {
			return m.PageIDs(n.CollectionID, n.ViewIDs, viewIndex)
		}
	}
	collections := sortedKeys(m.CollectionQuery)
	if len(collections) == 0 {
		return []string{}
	}
	return m.PageIDs(collections[0], nil, viewIndex)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
