// Package convert normalizes official-API page properties into the
// run-of-segments shape of the record map, and infers collection schemas.
package convert

import (
	"strconv"

	"github.com/mesh-intelligence/notionmap/internal/official"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// TitleKey is the record-map key every title-typed property is stored under.
const TitleKey = "title"

// Checkbox renderings.
const (
	CheckboxYes = "Yes"
	CheckboxNo  = "No"
)

type converter func(v official.PropertyValue) types.Property

// converters maps a property type tag to its converter. Tags missing here
// fall through to unknownProperty. It is filled in init because rollup
// converts its array elements through Property.
var converters map[string]converter

func init() {
	converters = map[string]converter{
		official.TypeTitle:          func(v official.PropertyValue) types.Property { return richText(v.Title) },
		official.TypeRichText:       func(v official.PropertyValue) types.Property { return richText(v.RichText) },
		official.TypeSelect:         func(v official.PropertyValue) types.Property { return option(v.Select) },
		official.TypeStatus:         func(v official.PropertyValue) types.Property { return option(v.Status) },
		official.TypeMultiSelect:    multiSelect,
		official.TypeDate:           func(v official.PropertyValue) types.Property { return date(v.Date) },
		official.TypeCheckbox:       func(v official.PropertyValue) types.Property { return boolean(v.Checkbox) },
		official.TypeNumber:         func(v official.PropertyValue) types.Property { return number(v.Number) },
		official.TypeURL:            func(v official.PropertyValue) types.Property { return str(v.URL) },
		official.TypeEmail:          func(v official.PropertyValue) types.Property { return str(v.Email) },
		official.TypePhoneNumber:    func(v official.PropertyValue) types.Property { return str(v.PhoneNumber) },
		official.TypeFiles:          files,
		official.TypePeople:         people,
		official.TypeRelation:       relation,
		official.TypeRollup:         rollup,
		official.TypeFormula:        formula,
		official.TypeCreatedTime:    func(v official.PropertyValue) types.Property { return str(v.CreatedTime) },
		official.TypeLastEditedTime: func(v official.PropertyValue) types.Property { return str(v.LastEditedTime) },
		official.TypeCreatedBy:      func(v official.PropertyValue) types.Property { return user(v.CreatedBy) },
		official.TypeLastEditedBy:   func(v official.PropertyValue) types.Property { return user(v.LastEditedBy) },
	}
}

// Property converts one typed property. It returns the record-map key, which
// is TitleKey for title properties and name otherwise. It never fails: a
// missing payload yields an empty Property and an unknown type tag yields a
// single empty segment.
func Property(name string, v official.PropertyValue) (string, types.Property) {
	key := name
	if v.Type == official.TypeTitle {
		key = TitleKey
	}
	conv, ok := converters[v.Type]
	if !ok {
		return key, unknownProperty()
	}
	return key, conv(v)
}

// Properties converts a whole property bag.
func Properties(props map[string]official.PropertyValue) map[string]types.Property {
	out := make(map[string]types.Property, len(props))
	for name, v := range props {
		key, p := Property(name, v)
		out[key] = p
	}
	return out
}

// Supported reports whether a type tag has a dedicated converter.
func Supported(typ string) bool {
	_, ok := converters[typ]
	return ok
}

func unknownProperty() types.Property {
	return types.Text("")
}

func richText(spans []official.RichText) types.Property {
	out := make(types.Property, 0, len(spans))
	for _, s := range spans {
		out = append(out, types.Run{s.PlainText})
	}
	return out
}

func option(o *official.Option) types.Property {
	if o == nil || o.Name == "" {
		return types.Empty()
	}
	return types.Text(o.Name)
}

func multiSelect(v official.PropertyValue) types.Property {
	out := make(types.Property, 0, len(v.MultiSelect))
	for _, o := range v.MultiSelect {
		out = append(out, types.Run{o.Name})
	}
	return out
}

func date(d *official.DateValue) types.Property {
	if d == nil || d.Start == "" {
		return types.Empty()
	}
	return types.Text(d.Start)
}

func number(n *float64) types.Property {
	if n == nil {
		return types.Empty()
	}
	return types.Text(strconv.FormatFloat(*n, 'f', -1, 64))
}

func str(s *string) types.Property {
	if s == nil || *s == "" {
		return types.Empty()
	}
	return types.Text(*s)
}

func boolean(b *bool) types.Property {
	if b == nil {
		return types.Empty()
	}
	if *b {
		return types.Text(CheckboxYes)
	}
	return types.Text(CheckboxNo)
}

func files(v official.PropertyValue) types.Property {
	out := make(types.Property, 0, len(v.Files))
	for i := range v.Files {
		if link := v.Files[i].Link(); link != "" {
			out = append(out, types.Run{link})
		}
	}
	return out
}

func people(v official.PropertyValue) types.Property {
	out := make(types.Property, 0, len(v.People))
	for _, u := range v.People {
		out = append(out, userRun(u))
	}
	return out
}

func user(u *official.User) types.Property {
	if u == nil {
		return types.Empty()
	}
	return types.Property{userRun(*u)}
}

func userRun(u official.User) types.Run {
	if u.Name != "" {
		return types.Run{u.Name}
	}
	return types.Run{u.ID}
}

func relation(v official.PropertyValue) types.Property {
	out := make(types.Property, 0, len(v.Relation))
	for _, r := range v.Relation {
		out = append(out, types.Run{r.ID})
	}
	return out
}

// rollup unwraps one level by the rollup's own type tag. Array elements are
// converted as properties in their own right and their runs concatenated.
func rollup(v official.PropertyValue) types.Property {
	r := v.Rollup
	if r == nil {
		return types.Empty()
	}
	switch r.Type {
	case "number":
		return number(r.Number)
	case "date":
		return date(r.Date)
	case "array":
		out := types.Empty()
		for _, elem := range r.Array {
			_, p := Property("", elem)
			out = append(out, p...)
		}
		return out
	default:
		return unknownProperty()
	}
}

func formula(v official.PropertyValue) types.Property {
	f := v.Formula
	if f == nil {
		return types.Empty()
	}
	switch f.Type {
	case "string":
		return str(f.String)
	case "number":
		return number(f.Number)
	case "boolean":
		return boolean(f.Boolean)
	case "date":
		return date(f.Date)
	default:
		return unknownProperty()
	}
}
