package assemble

import (
	"github.com/mesh-intelligence/notionmap/internal/convert"
	"github.com/mesh-intelligence/notionmap/internal/official"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// Fixed names of the synthesized database metadata.
const (
	DefaultDatabaseTitle  = "Database"
	DefaultViewName       = "Default View"
	DefaultCollectionIcon = "📄"
)

// FromDatabase builds a record map from a database query result. The map
// holds a database-root node, one page node per result in result order, the
// collection with an inferred schema, a single table view, and one query
// bucket listing every page id.
func FromDatabase(pages []official.Page, collectionID string) *types.RecordMap {
	m := types.NewRecordMap()

	title := DefaultDatabaseTitle
	if len(pages) > 0 && pages[0].Parent.DatabaseID != "" {
		title = pages[0].Parent.DatabaseID
	}
	m.PutNode(&types.Node{
		ID:           collectionID,
		Type:         types.NodeTypeCollectionViewPage,
		Properties:   map[string]types.Property{convert.TitleKey: types.Text(title)},
		CollectionID: collectionID,
		ViewIDs:      []string{types.DefaultViewID},
		Alive:        true,
	})

	ids := make([]string, 0, len(pages))
	for i := range pages {
		p := &pages[i]
		n := pageNode(p)
		n.ParentID = collectionID
		n.ParentTable = types.ParentTableCollection
		m.PutNode(n)
		ids = append(ids, p.ID)
	}

	m.PutCollection(&types.Collection{
		ID:          collectionID,
		Name:        types.Text(DefaultDatabaseTitle),
		Schema:      convert.InferSchema(pages),
		Icon:        DefaultCollectionIcon,
		ParentID:    collectionID,
		ParentTable: types.ParentTableSpace,
	})
	m.PutView(&types.View{
		ID:          types.DefaultViewID,
		Type:        types.ViewTypeTable,
		Name:        DefaultViewName,
		ParentID:    collectionID,
		ParentTable: types.ParentTableCollection,
	})
	m.PutQuery(collectionID, types.DefaultViewID, &types.QueryResult{
		CollectionGroupResults: &types.GroupResults{BlockIDs: ids},
		BlockIDs:               append([]string(nil), ids...),
	})
	return m
}

// FromPage builds a record map from one page and its flattened blocks. The
// page node's content lists the block ids in traversal order.
func FromPage(page *official.Page, blocks []official.Block, pageID string) *types.RecordMap {
	m := types.NewRecordMap()

	n := pageNode(page)
	n.ID = pageID
	n.Content = make([]string, 0, len(blocks))
	for i := range blocks {
		n.Content = append(n.Content, blocks[i].ID)
	}
	m.PutNode(n)

	for i := range blocks {
		m.PutNode(blockNode(&blocks[i], pageID))
	}
	return m
}

// FromChildren builds a record map holding the given blocks as nodes, each
// parented to parentID unless the block reports its own parent.
func FromChildren(blocks []official.Block, parentID string) *types.RecordMap {
	m := types.NewRecordMap()
	for i := range blocks {
		m.PutNode(blockNode(&blocks[i], parentID))
	}
	return m
}

func pageNode(p *official.Page) *types.Node {
	n := &types.Node{
		ID:             p.ID,
		Type:           types.NodeTypePage,
		Properties:     convert.Properties(p.Properties),
		CreatedTime:    types.ParseTimestamp(p.CreatedTime),
		LastEditedTime: types.ParseTimestamp(p.LastEditedTime),
		Alive:          !p.Archived && !p.InTrash,
		Format:         map[string]any{},
	}
	if cover := p.Cover.Link(); cover != "" {
		n.Format[types.FormatPageCover] = cover
	}
	if icon := p.Icon.Value(); icon != "" {
		n.Format[types.FormatPageIcon] = icon
	}
	return n
}

func blockNode(b *official.Block, ownerID string) *types.Node {
	parent := b.Parent.PageID
	if parent == "" {
		parent = b.Parent.BlockID
	}
	if parent == "" {
		parent = ownerID
	}
	n := &types.Node{
		ID:             b.ID,
		Type:           b.Type,
		Properties:     map[string]types.Property{},
		CreatedTime:    types.ParseTimestamp(b.CreatedTime),
		LastEditedTime: types.ParseTimestamp(b.LastEditedTime),
		ParentID:       parent,
		ParentTable:    types.ParentTableBlock,
		Alive:          true,
		NotionBlock:    b.Raw,
	}
	if b.HasChildren {
		n.Content = []string{}
	}
	return n
}
