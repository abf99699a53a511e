// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/fair-bioheaders/fhr/pkg/cueutil"
)

const (
	// ConstraintRequired means a required field is absent or null.
	ConstraintRequired Constraint = "required"
	// ConstraintType means a value has the wrong type.
	ConstraintType Constraint = "type"
	// ConstraintEnum means a value is outside an enumerated set.
	ConstraintEnum Constraint = "enum"
	// ConstraintPattern means a string does not match its pattern.
	ConstraintPattern Constraint = "pattern"
	// ConstraintFormat means a string is not in the required format (dates).
	ConstraintFormat Constraint = "format"
	// ConstraintLength means a string is outside its length bounds.
	ConstraintLength Constraint = "length"
	// ConstraintAdditionalProperties means a field is not declared by the schema.
	ConstraintAdditionalProperties Constraint = "additionalProperties"
	// ConstraintSchema is any other schema conflict.
	ConstraintSchema Constraint = "schema"
)

var constraintRank = map[Constraint]int{
	ConstraintRequired:             0,
	ConstraintType:                 1,
	ConstraintEnum:                 2,
	ConstraintPattern:              3,
	ConstraintFormat:               4,
	ConstraintLength:               5,
	ConstraintAdditionalProperties: 6,
	ConstraintSchema:               7,
}

type (
	// Constraint names the kind of schema rule a value broke.
	Constraint string

	// SchemaViolation describes the first violated schema constraint.
	SchemaViolation struct {
		// Field is the path of the offending value, e.g. "taxon.uri" or "metadataAuthor[1].uri".
		Field      string
		Constraint Constraint
		// Message is the schema engine's description of the conflict.
		Message string
	}

	// Result is the outcome of a validation. A nil Violation means the header is valid.
	Result struct {
		Violation *SchemaViolation
	}

	// Validator checks headers against a Schema.
	Validator struct {
		schema *Schema
	}
)

// NewValidator creates a validator bound to schema.
func NewValidator(schema *Schema) *Validator {
	return &Validator{schema: schema}
}

// Valid reports whether no constraint was violated.
func (r Result) Valid() bool {
	return r.Violation == nil
}

// Error implements the error interface.
func (v *SchemaViolation) Error() string {
	if v.Message == "" {
		return fmt.Sprintf("%s: violates %s constraint", v.Field, v.Constraint)
	}
	return fmt.Sprintf("%s: violates %s constraint: %s", v.Field, v.Constraint, v.Message)
}

// Validate checks the object-notation projection of h. Zero-valued fields and nil
// lists are treated as absent; empty lists are present. A Header cannot tell an
// explicit zero from a missing key, so a required field holding its zero value
// (schemaVersion 0, genome "") is reported as a required violation. Use
// ValidateDocument to check such values as written. h is not modified.
func (v *Validator) Validate(h *Header) (Result, error) {
	raw, err := json.Marshal(h)
	if err != nil {
		return Result{}, fmt.Errorf("project header: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Result{}, fmt.Errorf("project header: %w", err)
	}
	pruned, _ := pruneZero(doc)
	projection, _ := pruned.(map[string]any)
	if projection == nil {
		projection = map[string]any{}
	}
	return v.check(projection, "header.json")
}

// ValidateDocument checks a raw structured document or object-notation text.
// Unlike Validate, empty values count as present and unknown fields are reported.
// Callers bound the size of data.
func (v *Validator) ValidateDocument(data []byte, f Format, filename string) (Result, error) {
	var doc map[string]any
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Result{}, &MalformedCarrierError{Carrier: f.String(), Reason: "invalid document", Err: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Result{}, &MalformedCarrierError{Carrier: f.String(), Reason: "invalid document", Err: err}
		}
	default:
		return Result{}, &UnsupportedFormatError{Path: filename}
	}
	cleaned, _ := dropNulls(doc)
	tree, _ := cleaned.(map[string]any)
	if tree == nil {
		tree = map[string]any{}
	}
	return v.check(tree, filename)
}

// check reports the first violation in field-declaration order.
func (v *Validator) check(doc map[string]any, filename string) (Result, error) {
	found, err := v.cueViolations(doc, filename)
	if err != nil {
		return Result{}, err
	}

	for _, field := range v.schema.fields {
		if _, ok := doc[field]; !ok {
			if v.schema.IsRequired(field) {
				return Result{Violation: &SchemaViolation{Field: field, Constraint: ConstraintRequired}}, nil
			}
			continue
		}
		var fieldViolations []SchemaViolation
		for _, sv := range found {
			if topLevel(sv.Field) == field {
				fieldViolations = append(fieldViolations, sv)
			}
		}
		if len(fieldViolations) > 0 {
			first := slices.MinFunc(fieldViolations, compareViolations)
			return Result{Violation: &first}, nil
		}
	}

	unknown := slices.Sorted(maps.Keys(doc))
	for _, field := range unknown {
		if !v.schema.knows(field) {
			return Result{Violation: &SchemaViolation{
				Field:      field,
				Constraint: ConstraintAdditionalProperties,
				Message:    "field not allowed",
			}}, nil
		}
	}

	if len(found) > 0 {
		first := slices.MinFunc(found, compareViolations)
		return Result{Violation: &first}, nil
	}
	return Result{}, nil
}

// cueViolations unifies doc with the schema definition and converts every CUE error.
func (v *Validator) cueViolations(doc map[string]any, filename string) ([]SchemaViolation, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	value := v.schema.ctx.CompileBytes(data, cue.Filename(filename))
	if value.Err() != nil {
		return nil, cueutil.FormatError(value.Err(), filename)
	}

	unified := v.schema.def.Unify(value)
	err = unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil, nil
	}

	var violations []SchemaViolation
	for _, e := range cueerrors.Errors(err) {
		path := cueutil.FormatPath(trimDefinitions(cueerrors.Path(e)))
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		violations = append(violations, SchemaViolation{
			Field:      path,
			Constraint: classify(msg),
			Message:    msg,
		})
	}
	return violations, nil
}

// classify maps a CUE error message to the constraint kind it reports.
func classify(msg string) Constraint {
	switch {
	case strings.Contains(msg, "mismatched types"):
		return ConstraintType
	case strings.Contains(msg, "not allowed"):
		return ConstraintAdditionalProperties
	case strings.Contains(msg, "MinRunes"), strings.Contains(msg, "MaxRunes"):
		return ConstraintLength
	case strings.Contains(msg, "time.Format"):
		return ConstraintFormat
	case strings.Contains(msg, "=~"), strings.Contains(msg, "does not match"):
		return ConstraintPattern
	case strings.Contains(msg, "disjunction"), strings.Contains(msg, "conflicting values"):
		return ConstraintEnum
	default:
		return ConstraintSchema
	}
}

func compareViolations(a, b SchemaViolation) int {
	return cmp.Or(
		cmp.Compare(constraintRank[a.Constraint], constraintRank[b.Constraint]),
		cmp.Compare(a.Field, b.Field),
	)
}

// topLevel returns the first element of a formatted path.
func topLevel(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

// trimDefinitions drops leading definition selectors such as "#FHR".
func trimDefinitions(path []string) []string {
	for len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return path
}

// pruneZero removes zero scalars, nulls and objects left empty. Lists are kept so
// that an empty list stays present.
func pruneZero(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case string:
		return x, x != ""
	case float64:
		return x, x != 0
	case bool:
		return x, x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, child := range x {
			if pruned, keep := pruneZero(child); keep {
				out[k] = pruned
			}
		}
		return out, len(out) > 0
	case []any:
		out := make([]any, 0, len(x))
		for _, child := range x {
			if m, ok := child.(map[string]any); ok {
				pruned, _ := pruneZero(m)
				out = append(out, pruned)
				continue
			}
			out = append(out, child)
		}
		return out, true
	default:
		return x, true
	}
}

// dropNulls removes null values and renders YAML timestamps back to text.
func dropNulls(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case time.Time:
		if x.Equal(x.Truncate(24 * time.Hour)) {
			return x.Format(time.DateOnly), true
		}
		return x.Format(time.RFC3339), true
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, child := range x {
			if cleaned, keep := dropNulls(child); keep {
				out[k] = cleaned
			}
		}
		return out, true
	case []any:
		out := make([]any, 0, len(x))
		for _, child := range x {
			cleaned, _ := dropNulls(child)
			out = append(out, cleaned)
		}
		return out, true
	default:
		return x, true
	}
}
