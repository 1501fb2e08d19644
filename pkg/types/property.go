package types

import (
	"encoding/json"
	"strings"
)

// Run is one ordered sequence of plain-text segments.
type Run []string

// Property is a normalized property value: an ordered sequence of runs.
// Scalar values collapse to a single one-segment run; absent values are an
// empty Property.
type Property []Run

// Text builds a single-run Property from the given segments.
func Text(segments ...string) Property {
	return Property{Run(segments)}
}

// Empty returns a non-nil Property with no runs.
func Empty() Property {
	return Property{}
}

// PlainText joins the first segment of every run.
func (p Property) PlainText() string {
	var b strings.Builder
	for _, r := range p {
		if len(r) > 0 {
			b.WriteString(r[0])
		}
	}
	return b.String()
}

// UnmarshalJSON accepts legacy runs, where text segments may be followed by
// decoration arrays (for example ["text", [["b"]]]). Only string segments are
// kept.
func (r *Run) UnmarshalJSON(data []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	out := make(Run, 0, len(elems))
	for _, e := range elems {
		var s string
		if err := json.Unmarshal(e, &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	*r = out
	return nil
}
