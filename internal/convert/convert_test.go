package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/notionmap/internal/official"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

func decodeValue(t *testing.T, raw string) official.PropertyValue {
	t.Helper()
	var v official.PropertyValue
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestProperty(t *testing.T) {
	tests := []struct {
		name    string
		prop    string
		raw     string
		wantKey string
		want    types.Property
	}{
		{
			name:    "title goes under the title key",
			prop:    "Name",
			raw:     `{"type":"title","title":[{"plain_text":"Hello "},{"plain_text":"world"}]}`,
			wantKey: "title",
			want:    types.Property{{"Hello "}, {"world"}},
		},
		{
			name:    "rich text keeps one run per span",
			prop:    "Summary",
			raw:     `{"type":"rich_text","rich_text":[{"plain_text":"a"},{"plain_text":"b"}]}`,
			wantKey: "Summary",
			want:    types.Property{{"a"}, {"b"}},
		},
		{
			name:    "select",
			prop:    "Category",
			raw:     `{"type":"select","select":{"id":"1","name":"Tech","color":"blue"}}`,
			wantKey: "Category",
			want:    types.Text("Tech"),
		},
		{
			name:    "null select",
			prop:    "Category",
			raw:     `{"type":"select","select":null}`,
			wantKey: "Category",
			want:    types.Empty(),
		},
		{
			name:    "multi select",
			prop:    "Tags",
			raw:     `{"type":"multi_select","multi_select":[{"name":"go"},{"name":"notion"}]}`,
			wantKey: "Tags",
			want:    types.Property{{"go"}, {"notion"}},
		},
		{
			name:    "date start",
			prop:    "Date",
			raw:     `{"type":"date","date":{"start":"2024-01-02","end":"2024-01-05"}}`,
			wantKey: "Date",
			want:    types.Text("2024-01-02"),
		},
		{
			name:    "checkbox true",
			prop:    "Done",
			raw:     `{"type":"checkbox","checkbox":true}`,
			wantKey: "Done",
			want:    types.Text("Yes"),
		},
		{
			name:    "checkbox false",
			prop:    "Done",
			raw:     `{"type":"checkbox","checkbox":false}`,
			wantKey: "Done",
			want:    types.Text("No"),
		},
		{
			name:    "number",
			prop:    "Score",
			raw:     `{"type":"number","number":3.5}`,
			wantKey: "Score",
			want:    types.Text("3.5"),
		},
		{
			name:    "integral number has no exponent",
			prop:    "Views",
			raw:     `{"type":"number","number":1200000}`,
			wantKey: "Views",
			want:    types.Text("1200000"),
		},
		{
			name:    "null number",
			prop:    "Score",
			raw:     `{"type":"number","number":null}`,
			wantKey: "Score",
			want:    types.Empty(),
		},
		{
			name:    "url",
			prop:    "Link",
			raw:     `{"type":"url","url":"https://example.com"}`,
			wantKey: "Link",
			want:    types.Text("https://example.com"),
		},
		{
			name:    "email",
			prop:    "Mail",
			raw:     `{"type":"email","email":"a@example.com"}`,
			wantKey: "Mail",
			want:    types.Text("a@example.com"),
		},
		{
			name:    "phone",
			prop:    "Phone",
			raw:     `{"type":"phone_number","phone_number":null}`,
			wantKey: "Phone",
			want:    types.Empty(),
		},
		{
			name:    "status",
			prop:    "status",
			raw:     `{"type":"status","status":{"name":"Published"}}`,
			wantKey: "status",
			want:    types.Text("Published"),
		},
		{
			name:    "files",
			prop:    "Attachments",
			raw:     `{"type":"files","files":[{"external":{"url":"https://x/a.png"}},{"file":{"url":"https://s3/b.pdf"}}]}`,
			wantKey: "Attachments",
			want:    types.Property{{"https://x/a.png"}, {"https://s3/b.pdf"}},
		},
		{
			name:    "people prefer names",
			prop:    "Owner",
			raw:     `{"type":"people","people":[{"id":"u1","name":"Ada"},{"id":"u2"}]}`,
			wantKey: "Owner",
			want:    types.Property{{"Ada"}, {"u2"}},
		},
		{
			name:    "relation",
			prop:    "Related",
			raw:     `{"type":"relation","relation":[{"id":"r1"},{"id":"r2"}]}`,
			wantKey: "Related",
			want:    types.Property{{"r1"}, {"r2"}},
		},
		{
			name:    "rollup number",
			prop:    "Total",
			raw:     `{"type":"rollup","rollup":{"type":"number","number":7}}`,
			wantKey: "Total",
			want:    types.Text("7"),
		},
		{
			name:    "rollup array",
			prop:    "Names",
			raw:     `{"type":"rollup","rollup":{"type":"array","array":[{"type":"title","title":[{"plain_text":"x"}]},{"type":"number","number":2}]}}`,
			wantKey: "Names",
			want:    types.Property{{"x"}, {"2"}},
		},
		{
			name:    "formula string",
			prop:    "Slug",
			raw:     `{"type":"formula","formula":{"type":"string","string":"hello-world"}}`,
			wantKey: "Slug",
			want:    types.Text("hello-world"),
		},
		{
			name:    "formula boolean",
			prop:    "Flag",
			raw:     `{"type":"formula","formula":{"type":"boolean","boolean":true}}`,
			wantKey: "Flag",
			want:    types.Text("Yes"),
		},
		{
			name:    "created time",
			prop:    "Created",
			raw:     `{"type":"created_time","created_time":"2024-01-02T03:04:05.000Z"}`,
			wantKey: "Created",
			want:    types.Text("2024-01-02T03:04:05.000Z"),
		},
		{
			name:    "last edited by",
			prop:    "Editor",
			raw:     `{"type":"last_edited_by","last_edited_by":{"id":"u9"}}`,
			wantKey: "Editor",
			want:    types.Text("u9"),
		},
		{
			name:    "unknown type degrades to one empty segment",
			prop:    "Button",
			raw:     `{"type":"button","button":{}}`,
			wantKey: "Button",
			want:    types.Text(""),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, got := Property(tt.prop, decodeValue(t, tt.raw))
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPropertyNeverFailsOnMissingPayload(t *testing.T) {
	for typ := range converters {
		t.Run(typ, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, got := Property("field", official.PropertyValue{Type: typ})
				assert.NotNil(t, got)
				for _, run := range got {
					for _, seg := range run {
						assert.Empty(t, seg)
					}
				}
			})
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(official.TypeFormula))
	assert.False(t, Supported("button"))
}

func TestProperties(t *testing.T) {
	props := map[string]official.PropertyValue{
		"Name": decodeValue(t, `{"type":"title","title":[{"plain_text":"Post"}]}`),
		"Tags": decodeValue(t, `{"type":"multi_select","multi_select":[{"name":"go"}]}`),
	}
	got := Properties(props)
	assert.Equal(t, map[string]types.Property{
		"title": types.Text("Post"),
		"Tags":  types.Text("go"),
	}, got)
}
