package types

import (
	"encoding/json"
	"strconv"
	"time"
)

// Node kinds produced by the assemblers. Block nodes keep the block type
// reported by the source (paragraph, heading_1, ...).
const (
	NodeTypeCollectionViewPage = "collection_view_page"
	NodeTypePage               = "page"
)

// Parent tables a node may point at.
const (
	ParentTableBlock      = "block"
	ParentTableCollection = "collection"
	ParentTableSpace      = "space"
)

// Format keys used on page nodes.
const (
	FormatPageCover = "page_cover"
	FormatPageIcon  = "page_icon"
)

// Node is one content object: a database root, a page, or a block.
type Node struct {
	ID             string              `json:"id"`
	Type           string              `json:"type"`
	Properties     map[string]Property `json:"properties,omitempty"`
	Content        []string            `json:"content,omitzero"`
	Format         map[string]any      `json:"format,omitempty"`
	CreatedTime    Timestamp           `json:"created_time,omitzero"`
	LastEditedTime Timestamp           `json:"last_edited_time,omitzero"`
	ParentID       string              `json:"parent_id,omitempty"`
	ParentTable    string              `json:"parent_table,omitempty"`
	Alive          bool                `json:"alive"`
	CollectionID   string              `json:"collection_id,omitempty"`
	ViewIDs        []string            `json:"view_ids,omitempty"`
	SpaceID        string              `json:"space_id,omitempty"`

	// NotionBlock keeps the official block payload for renderers that
	// understand it.
	NotionBlock json.RawMessage `json:"notion_block,omitempty"`
}

// Title returns the plain text of the "title" property.
func (n *Node) Title() string {
	return n.Properties["title"].PlainText()
}

// Timestamp is a point in time encoded as epoch milliseconds. It decodes
// either epoch milliseconds (legacy source) or an RFC 3339 string (official
// source).
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses an RFC 3339 string. Unparseable or empty input yields
// the zero Timestamp.
func ParseTimestamp(s string) Timestamp {
	if s == "" {
		return Timestamp{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Timestamp{}
	}
	return Timestamp{t.UTC()}
}

// MarshalJSON encodes the timestamp as epoch milliseconds.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, t.UnixMilli(), 10), nil
}

// UnmarshalJSON decodes epoch milliseconds or an RFC 3339 string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = ParseTimestamp(s)
		return nil
	}
	var ms float64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}
	*t = Timestamp{time.UnixMilli(int64(ms)).UTC()}
	return nil
}
