package official

import "encoding/json"

// Page is a page or database row as returned by the official API.
type Page struct {
	Object         string                   `json:"object"`
	ID             string                   `json:"id"`
	CreatedTime    string                   `json:"created_time"`
	LastEditedTime string                   `json:"last_edited_time"`
	Archived       bool                     `json:"archived"`
	InTrash        bool                     `json:"in_trash"`
	Cover          *FileRef                 `json:"cover,omitempty"`
	Icon           *Icon                    `json:"icon,omitempty"`
	Parent         Parent                   `json:"parent"`
	Properties     map[string]PropertyValue `json:"properties"`
	URL            string                   `json:"url,omitempty"`
	PublicURL      string                   `json:"public_url,omitempty"`
}

// Block is one content block. Raw keeps the full payload as received.
type Block struct {
	Object         string `json:"object"`
	ID             string `json:"id"`
	Type           string `json:"type"`
	CreatedTime    string `json:"created_time"`
	LastEditedTime string `json:"last_edited_time"`
	HasChildren    bool   `json:"has_children"`
	Archived       bool   `json:"archived"`
	Parent         Parent `json:"parent"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the common block fields and keeps the raw payload.
func (b *Block) UnmarshalJSON(data []byte) error {
	type plain Block
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = Block(p)
	b.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Parent types.
const (
	ParentDatabase  = "database_id"
	ParentPage      = "page_id"
	ParentBlock     = "block_id"
	ParentWorkspace = "workspace"
)

// Parent links an object to the object that contains it.
type Parent struct {
	Type       string `json:"type,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// ID returns whichever parent identifier is set.
func (p Parent) ID() string {
	switch {
	case p.PageID != "":
		return p.PageID
	case p.BlockID != "":
		return p.BlockID
	default:
		return p.DatabaseID
	}
}

// FileRef is an external or Notion-hosted file.
type FileRef struct {
	Type     string    `json:"type,omitempty"`
	Name     string    `json:"name,omitempty"`
	External *FileLink `json:"external,omitempty"`
	File     *FileLink `json:"file,omitempty"`
}

// FileLink is the URL part of a file reference.
type FileLink struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

// Link returns the external URL, else the hosted file URL.
func (f *FileRef) Link() string {
	if f == nil {
		return ""
	}
	if f.External != nil && f.External.URL != "" {
		return f.External.URL
	}
	if f.File != nil {
		return f.File.URL
	}
	return ""
}

// Icon is an emoji or a file.
type Icon struct {
	Type     string    `json:"type,omitempty"`
	Emoji    string    `json:"emoji,omitempty"`
	External *FileLink `json:"external,omitempty"`
	File     *FileLink `json:"file,omitempty"`
}

// Value returns the emoji, else the icon URL.
func (i *Icon) Value() string {
	if i == nil {
		return ""
	}
	if i.Emoji != "" {
		return i.Emoji
	}
	if i.External != nil && i.External.URL != "" {
		return i.External.URL
	}
	if i.File != nil {
		return i.File.URL
	}
	return ""
}

// Property type tags.
const (
	TypeTitle          = "title"
	TypeRichText       = "rich_text"
	TypeSelect         = "select"
	TypeMultiSelect    = "multi_select"
	TypeDate           = "date"
	TypeCheckbox       = "checkbox"
	TypeNumber         = "number"
	TypeURL            = "url"
	TypeEmail          = "email"
	TypePhoneNumber    = "phone_number"
	TypeStatus         = "status"
	TypeFiles          = "files"
	TypePeople         = "people"
	TypeRelation       = "relation"
	TypeRollup         = "rollup"
	TypeFormula        = "formula"
	TypeCreatedTime    = "created_time"
	TypeLastEditedTime = "last_edited_time"
	TypeCreatedBy      = "created_by"
	TypeLastEditedBy   = "last_edited_by"
)

// PropertyValue is one typed page property. Only the payload field named by
// Type is meaningful; it is nil when the API reports null.
type PropertyValue struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	Title          []RichText `json:"title,omitempty"`
	RichText       []RichText `json:"rich_text,omitempty"`
	Select         *Option    `json:"select,omitempty"`
	MultiSelect    []Option   `json:"multi_select,omitempty"`
	Date           *DateValue `json:"date,omitempty"`
	Checkbox       *bool      `json:"checkbox,omitempty"`
	Number         *float64   `json:"number,omitempty"`
	URL            *string    `json:"url,omitempty"`
	Email          *string    `json:"email,omitempty"`
	PhoneNumber    *string    `json:"phone_number,omitempty"`
	Status         *Option    `json:"status,omitempty"`
	Files          []FileRef  `json:"files,omitempty"`
	People         []User     `json:"people,omitempty"`
	Relation       []Relation `json:"relation,omitempty"`
	Rollup         *Rollup    `json:"rollup,omitempty"`
	Formula        *Formula   `json:"formula,omitempty"`
	CreatedTime    *string    `json:"created_time,omitempty"`
	LastEditedTime *string    `json:"last_edited_time,omitempty"`
	CreatedBy      *User      `json:"created_by,omitempty"`
	LastEditedBy   *User      `json:"last_edited_by,omitempty"`
}

// RichText is one rich-text span.
type RichText struct {
	Type      string `json:"type,omitempty"`
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

// Option is a select, multi-select, or status option.
type Option struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateValue is a date or date range.
type DateValue struct {
	Start    string `json:"start"`
	End      string `json:"end,omitempty"`
	TimeZone string `json:"time_zone,omitempty"`
}

// User is a person or bot reference.
type User struct {
	Object string `json:"object,omitempty"`
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
}

// Relation references a related page.
type Relation struct {
	ID string `json:"id"`
}

// Rollup is a rollup value, tagged by its own Type (number, date, array).
type Rollup struct {
	Type   string          `json:"type"`
	Number *float64        `json:"number,omitempty"`
	Date   *DateValue      `json:"date,omitempty"`
	Array  []PropertyValue `json:"array,omitempty"`
}

// Formula is a formula value, tagged by its own Type (string, number,
// boolean, date).
type Formula struct {
	Type    string     `json:"type"`
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}
