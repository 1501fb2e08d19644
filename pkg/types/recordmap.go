package types

import (
	"encoding/json"
	"sort"
)

// Entry wraps a table value the way the legacy source does.
type Entry[T any] struct {
	Role  string `json:"role,omitempty"`
	Value *T     `json:"value"`
}

// Tables is the flattened alias of the node, collection, and view tables.
type Tables struct {
	Block          map[string]*Entry[Node]       `json:"block"`
	Collection     map[string]*Entry[Collection] `json:"collection"`
	CollectionView map[string]*Entry[View]       `json:"collection_view"`
}

// RecordMap is the unified output of one resolution call. Query results are
// keyed by collection identifier, then view identifier.
type RecordMap struct {
	Block           map[string]*Entry[Node]            `json:"block"`
	Collection      map[string]*Entry[Collection]      `json:"collection"`
	CollectionView  map[string]*Entry[View]            `json:"collection_view"`
	CollectionQuery map[string]map[string]*QueryResult `json:"collection_query"`
	Alias           Tables                             `json:"recordMap"`
}

// NewRecordMap returns an empty, well-formed RecordMap whose alias shares the
// node, collection, and view tables.
func NewRecordMap() *RecordMap {
	m := &RecordMap{
		Block:           make(map[string]*Entry[Node]),
		Collection:      make(map[string]*Entry[Collection]),
		CollectionView:  make(map[string]*Entry[View]),
		CollectionQuery: make(map[string]map[string]*QueryResult),
	}
	m.link()
	return m
}

func (m *RecordMap) link() {
	if m.Block == nil {
		m.Block = make(map[string]*Entry[Node])
	}
	if m.Collection == nil {
		m.Collection = make(map[string]*Entry[Collection])
	}
	if m.CollectionView == nil {
		m.CollectionView = make(map[string]*Entry[View])
	}
	if m.CollectionQuery == nil {
		m.CollectionQuery = make(map[string]map[string]*QueryResult)
	}
	m.Alias = Tables{
		Block:          m.Block,
		Collection:     m.Collection,
		CollectionView: m.CollectionView,
	}
}

// UnmarshalJSON decodes a record map and relinks the alias tables, so maps
// read from a cache or from the legacy source behave like fresh ones.
func (m *RecordMap) UnmarshalJSON(data []byte) error {
	type plain RecordMap
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = RecordMap(p)
	m.link()
	return nil
}

// PutNode adds n to the node table.
func (m *RecordMap) PutNode(n *Node) {
	m.Block[n.ID] = &Entry[Node]{Value: n}
}

// PutCollection adds c to the collection table.
func (m *RecordMap) PutCollection(c *Collection) {
	m.Collection[c.ID] = &Entry[Collection]{Value: c}
}

// PutView adds v to the view table.
func (m *RecordMap) PutView(v *View) {
	m.CollectionView[v.ID] = &Entry[View]{Value: v}
}

// PutQuery stores the query result of one view.
func (m *RecordMap) PutQuery(collectionID, viewID string, q *QueryResult) {
	views, ok := m.CollectionQuery[collectionID]
	if !ok {
		views = make(map[string]*QueryResult)
		m.CollectionQuery[collectionID] = views
	}
	views[viewID] = q
}

// Node looks up a node by identifier. Entries without a value count as
// missing.
func (m *RecordMap) Node(id string) (*Node, bool) {
	e, ok := m.Block[id]
	if !ok || e == nil || e.Value == nil {
		return nil, false
	}
	return e.Value, true
}

// IsEmpty reports whether every table is empty.
func (m *RecordMap) IsEmpty() bool {
	return len(m.Block) == 0 && len(m.Collection) == 0 &&
		len(m.CollectionView) == 0 && len(m.CollectionQuery) == 0
}

// Merge copies every entry of other into m. Entries of other win.
func (m *RecordMap) Merge(other *RecordMap) {
	if other == nil {
		return
	}
	for id, e := range other.Block {
		m.Block[id] = e
	}
	for id, e := range other.Collection {
		m.Collection[id] = e
	}
	for id, e := range other.CollectionView {
		m.CollectionView[id] = e
	}
	for collID, views := range other.CollectionQuery {
		for viewID, q := range views {
			m.PutQuery(collID, viewID, q)
		}
	}
}

// DanglingRefs returns the sorted identifiers referenced from node content,
// node view lists, or query results that have no matching table entry.
func (m *RecordMap) DanglingRefs() []string {
	missing := make(map[string]bool)
	checkNode := func(id string) {
		if _, ok := m.Node(id); !ok {
			missing[id] = true
		}
	}
	for _, e := range m.Block {
		if e == nil || e.Value == nil {
			continue
		}
		for _, id := range e.Value.Content {
			checkNode(id)
		}
		for _, id := range e.Value.ViewIDs {
			if _, ok := m.CollectionView[id]; !ok {
				missing[id] = true
			}
		}
	}
	for _, views := range m.CollectionQuery {
		for _, q := range views {
			if q == nil {
				continue
			}
			for _, id := range q.BlockIDs {
				checkNode(id)
			}
			if q.CollectionGroupResults != nil {
				for _, id := range q.CollectionGroupResults.BlockIDs {
					checkNode(id)
				}
			}
		}
	}
	out := make([]string, 0, len(missing))
	for id := range missing {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// PageIDs lists the member pages of a collection. The view at viewIndex is
// consulted first; when it yields nothing, the de-duplicated union of every
// view's flat and grouped results is returned in first-seen order, visiting
// views in viewIDs order and then any remaining views sorted by identifier.
func (m *RecordMap) PageIDs(collectionID string, viewIDs []string, viewIndex int) []string {
	views, ok := m.CollectionQuery[collectionID]
	if !ok {
		return []string{}
	}
	if viewIndex >= 0 && viewIndex < len(viewIDs) {
		if q := views[viewIDs[viewIndex]]; q != nil && q.CollectionGroupResults != nil {
			if ids := q.CollectionGroupResults.BlockIDs; len(ids) > 0 {
				return append([]string(nil), ids...)
			}
		}
	}

	order := make([]string, 0, len(views))
	seenView := make(map[string]bool, len(views))
	for _, id := range viewIDs {
		if _, ok := views[id]; ok && !seenView[id] {
			order = append(order, id)
			seenView[id] = true
		}
	}
	rest := make([]string, 0, len(views))
	for id := range views {
		if !seenView[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	out := []string{}
	seen := make(map[string]bool)
	add := func(ids []string) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	for _, viewID := range order {
		q := views[viewID]
		if q == nil {
			continue
		}
		add(q.BlockIDs)
		if q.CollectionGroupResults != nil {
			add(q.CollectionGroupResults.BlockIDs)
		}
	}
	return out
}
