// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	_ "embed"
	"fmt"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

const schemaDefinition = "#FHR"

//go:embed fhr_schema.cue
var schemaSource string

// Schema is the compiled FHR validation ruleset. It is immutable once loaded.
// A Schema holds CUE values and must not be shared between goroutines.
type Schema struct {
	ctx      *cue.Context
	def      cue.Value
	required []string
	fields   []string
}

// LoadSchema compiles the embedded FHR schema.
func LoadSchema() (*Schema, error) {
	ctx := cuecontext.New()
	root := ctx.CompileString(schemaSource, cue.Filename("fhr_schema.cue"))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile fhr schema: %w", root.Err())
	}

	def := root.LookupPath(cue.ParsePath(schemaDefinition))
	if def.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaDefinition, def.Err())
	}

	var required []string
	if err := root.LookupPath(cue.ParsePath("#required")).Decode(&required); err != nil {
		return nil, fmt.Errorf("internal error: failed to decode required fields: %w", err)
	}

	return &Schema{
		ctx:      ctx,
		def:      def,
		required: required,
		fields:   slices.Clone(FieldOrder),
	}, nil
}

// Required returns the fields that must be present, in schema order.
func (s *Schema) Required() []string {
	return slices.Clone(s.required)
}

// IsRequired reports whether field must be present.
func (s *Schema) IsRequired(field string) bool {
	return slices.Contains(s.required, field)
}

// knows reports whether field is declared by the schema. The published FHR
// schema's "license" field is accepted in addition to the header fields.
func (s *Schema) knows(field string) bool {
	return field == "license" || slices.Contains(s.fields, field)
}
