package types

// DefaultViewID names the single table view synthesized for database results.
const DefaultViewID = "default_view"

// View types.
const (
	ViewTypeTable = "table"
)

// Collection is the metadata container for a set of pages.
type Collection struct {
	ID          string                 `json:"id"`
	Name        Property               `json:"name,omitempty"`
	Schema      map[string]SchemaField `json:"schema"`
	Icon        string                 `json:"icon,omitempty"`
	ParentID    string                 `json:"parent_id,omitempty"`
	ParentTable string                 `json:"parent_table,omitempty"`
}

// SchemaField declares the type of one collection field. Options are set for
// select and multi-select fields.
type SchemaField struct {
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Options []SelectOption `json:"options,omitempty"`
}

// SelectOption is one enumerated option of a select or multi-select field.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
	Value string `json:"value,omitempty"`
}

// View is a named arrangement of a collection's members.
type View struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Name        string         `json:"name,omitempty"`
	ParentID    string         `json:"parent_id,omitempty"`
	ParentTable string         `json:"parent_table,omitempty"`
	Format      map[string]any `json:"format,omitempty"`
}

// QueryResult lists the member node identifiers of one view. Table views fill
// the grouped bucket; flat views use BlockIDs directly.
type QueryResult struct {
	CollectionGroupResults *GroupResults `json:"collection_group_results,omitempty"`
	BlockIDs               []string      `json:"blockIds,omitempty"`
}

// GroupResults is the grouped bucket of a table view query.
type GroupResults struct {
	Type     string   `json:"type,omitempty"`
	BlockIDs []string `json:"blockIds"`
	HasMore  bool     `json:"hasMore,omitempty"`
}

// IDs returns the grouped identifiers when present, else the flat list.
func (q *QueryResult) IDs() []string {
	if q == nil {
		return nil
	}
	if q.CollectionGroupResults != nil && len(q.CollectionGroupResults.BlockIDs) > 0 {
		return q.CollectionGroupResults.BlockIDs
	}
	return q.BlockIDs
}
