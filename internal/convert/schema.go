package convert

import (
	"github.com/mesh-intelligence/notionmap/internal/official"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// InferSchema derives a collection schema from the first page only. Select
// fields list the first page's chosen option and multi-select fields its
// chosen options. No pages yields an empty schema.
func InferSchema(pages []official.Page) map[string]types.SchemaField {
	schema := make(map[string]types.SchemaField)
	if len(pages) == 0 {
		return schema
	}
	for name, v := range pages[0].Properties {
		field := types.SchemaField{Name: name, Type: v.Type, Options: []types.SelectOption{}}
		switch v.Type {
		case official.TypeSelect:
			if v.Select != nil {
				field.Options = append(field.Options, selectOption(*v.Select))
			}
		case official.TypeMultiSelect:
			for _, o := range v.MultiSelect {
				field.Options = append(field.Options, selectOption(o))
			}
		}
		schema[name] = field
	}
	return schema
}

func selectOption(o official.Option) types.SelectOption {
	return types.SelectOption{ID: o.ID, Name: o.Name, Color: o.Color, Value: o.Name}
}
