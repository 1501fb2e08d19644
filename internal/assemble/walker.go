// Package assemble expands block trees and builds record maps from
// official-API results.
package assemble

import (
	"context"
	"log/slog"

	"github.com/mesh-intelligence/notionmap/internal/official"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// ChildLister lists the direct children of a block or page.
type ChildLister interface {
	ListChildren(ctx context.Context, blockID string, pageSize int) ([]official.Block, error)
}

// Walker flattens block trees in pre-order, one fetch at a time.
type Walker struct {
	lister   ChildLister
	pageSize int
	logger   *slog.Logger
}

// NewWalker returns a Walker that fetches pageSize children per node. A
// non-positive pageSize uses types.DefaultPageSize; a nil logger uses the
// default logger.
func NewWalker(lister ChildLister, pageSize int, logger *slog.Logger) *Walker {
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default().With("component", "walker")
	}
	return &Walker{lister: lister, pageSize: pageSize, logger: logger}
}

// Expand returns children and all their descendants in pre-order. A failed
// children fetch is logged and the block is treated as a leaf; its siblings
// are still expanded.
func (w *Walker) Expand(ctx context.Context, children []official.Block) []official.Block {
	out := make([]official.Block, 0, len(children))
	return w.expand(ctx, children, out)
}

func (w *Walker) expand(ctx context.Context, children []official.Block, out []official.Block) []official.Block {
	for _, b := range children {
		out = append(out, b)
		if !b.HasChildren {
			continue
		}
		grand, err := w.lister.ListChildren(ctx, b.ID, w.pageSize)
		if err != nil {
			w.logger.WarnContext(ctx, "children fetch failed, skipping subtree",
				"block_id", b.ID, "error", err)
			continue
		}
		out = w.expand(ctx, grand, out)
	}
	return out
}

// Fetch lists the children of rootID and expands them. Unlike Expand, a
// failure to list the root's own children is returned.
func (w *Walker) Fetch(ctx context.Context, rootID string) ([]official.Block, error) {
	children, err := w.lister.ListChildren(ctx, rootID, w.pageSize)
	if err != nil {
		return nil, err
	}
	return w.Expand(ctx, children), nil
}
