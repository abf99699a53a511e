// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"errors"
	"strings"
	"testing"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()

	schema, err := LoadSchema()
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	return NewValidator(schema)
}

func TestLoadSchema(t *testing.T) {
	t.Parallel()

	schema, err := LoadSchema()
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	want := []string{"schema", "schemaVersion", "genome", "taxon", "version", "metadataAuthor", "assemblyAuthor", "dateCreated", "masking", "checksum"}
	got := schema.Required()
	if len(got) != len(want) {
		t.Fatalf("Required() = %v, want %v", got, want)
	}
	for _, field := range want {
		if !schema.IsRequired(field) {
			t.Errorf("%s should be required", field)
		}
	}
	for _, field := range []string{"genomeSynonym", "vitalStats", "funding"} {
		if schema.IsRequired(field) {
			t.Errorf("%s should be optional", field)
		}
	}
}

func TestValidateValidHeaders(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)

	minimal := sampleHeader()
	minimal.GenomeSynonym = nil
	minimal.AccessionID = AccessionID{}
	minimal.VitalStats = VitalStats{}
	minimal.Instrument = nil
	minimal.Identifier = nil
	minimal.RelatedLink = nil
	minimal.ScholarlyArticle = ""

	noAuthors := sampleHeader()
	noAuthors.AssemblyAuthor = []Author{}

	for name, h := range map[string]*Header{
		"full":       sampleHeader(),
		"minimal":    minimal,
		"empty list": noAuthors,
	} {
		result, err := v.Validate(h)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !result.Valid() {
			t.Errorf("%s: unexpected violation: %v", name, result.Violation)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	t.Parallel()

	unsetters := map[string]func(*Header){
		"schema":         func(h *Header) { h.Schema = "" },
		"schemaVersion":  func(h *Header) { h.SchemaVersion = 0 },
		"genome":         func(h *Header) { h.Genome = "" },
		"taxon":          func(h *Header) { h.Taxon = Taxon{} },
		"version":        func(h *Header) { h.Version = "" },
		"metadataAuthor": func(h *Header) { h.MetadataAuthor = nil },
		"assemblyAuthor": func(h *Header) { h.AssemblyAuthor = nil },
		"dateCreated":    func(h *Header) { h.DateCreated = "" },
		"masking":        func(h *Header) { h.Masking = "" },
		"checksum":       func(h *Header) { h.Checksum = "" },
	}

	for field, unset := range unsetters {
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			h := sampleHeader()
			unset(h)
			result, err := newTestValidator(t).Validate(h)
			if err != nil {
				t.Fatal(err)
			}
			if result.Valid() {
				t.Fatal("expected a violation")
			}
			if result.Violation.Field != field || result.Violation.Constraint != ConstraintRequired {
				t.Errorf("violation = %v, want required %s", result.Violation, field)
			}
		})
	}
}

func TestValidateConstraints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(*Header)
		field      string
		constraint Constraint
	}{
		{
			name:       "masking outside the allowed set",
			mutate:     func(h *Header) { h.Masking = "bogus" },
			field:      "masking",
			constraint: ConstraintEnum,
		},
		{
			name:       "checksum too short",
			mutate:     func(h *Header) { h.Checksum = testChecksum[:43] },
			field:      "checksum",
			constraint: ConstraintLength,
		},
		{
			name:       "checksum with invalid characters",
			mutate:     func(h *Header) { h.Checksum = strings.Repeat("!", 44) },
			field:      "checksum",
			constraint: ConstraintPattern,
		},
		{
			name:       "malformed ORCID",
			mutate:     func(h *Header) { h.MetadataAuthor[0].URI = "https://orcid.org/1234" },
			field:      "metadataAuthor[0].uri",
			constraint: ConstraintPattern,
		},
		{
			name:       "second assembly author",
			mutate:     func(h *Header) { h.AssemblyAuthor[1].URI = "orcid:0000-0003-4262-2329" },
			field:      "assemblyAuthor[1].uri",
			constraint: ConstraintPattern,
		},
		{
			name:       "taxon outside identifiers.org",
			mutate:     func(h *Header) { h.Taxon.URI = "https://www.ncbi.nlm.nih.gov/taxonomy/7004" },
			field:      "taxon.uri",
			constraint: ConstraintPattern,
		},
		{
			name:       "impossible date",
			mutate:     func(h *Header) { h.DateCreated = "2023-13-45" },
			field:      "dateCreated",
			constraint: ConstraintFormat,
		},
		{
			name:       "article without DOI",
			mutate:     func(h *Header) { h.ScholarlyArticle = "https://doi.org/10.1038/ncomms3957" },
			field:      "scholarlyArticle",
			constraint: ConstraintPattern,
		},
		{
			name:       "identifier without prefix",
			mutate:     func(h *Header) { h.Identifier = []string{"GCA_000516895.1"} },
			field:      "identifier[0]",
			constraint: ConstraintPattern,
		},
		{
			name:       "first violation in field order",
			mutate:     func(h *Header) { h.Checksum = "short"; h.Masking = "bogus" },
			field:      "masking",
			constraint: ConstraintEnum,
		},
		{
			name:       "required before later constraint",
			mutate:     func(h *Header) { h.Genome = ""; h.Masking = "bogus" },
			field:      "genome",
			constraint: ConstraintRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := newTestValidator(t)
			h := sampleHeader()
			tt.mutate(h)
			result, err := v.Validate(h)
			if err != nil {
				t.Fatal(err)
			}
			if result.Valid() {
				t.Fatal("expected a violation")
			}
			if result.Violation.Field != tt.field || result.Violation.Constraint != tt.constraint {
				t.Errorf("violation = %v, want %s on %s", result.Violation, tt.constraint, tt.field)
			}
		})
	}
}

func TestValidateDoesNotModifyHeader(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)
	h := sampleHeader()
	h.GenomeSynonym = nil
	before := h.Clone()
	if _, err := v.Validate(h); err != nil {
		t.Fatal(err)
	}
	if h.GenomeSynonym != nil || h.Checksum != before.Checksum {
		t.Error("Validate modified its input")
	}
}

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	full, err := JSONCodec{}.Encode(sampleHeader())
	if err != nil {
		t.Fatal(err)
	}
	fullYAML, err := YAMLCodec{}.Encode(sampleHeader())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		data       string
		format     Format
		field      string
		constraint Constraint
	}{
		{name: "scenario document", data: scenarioDocument, format: FormatJSON},
		{name: "encoded json", data: string(full), format: FormatJSON},
		{name: "encoded yaml", data: string(fullYAML), format: FormatYAML},
		{
			name:       "unknown field",
			data:       strings.Replace(scenarioDocument, `"masking"`, `"colour": "green", "masking"`, 1),
			format:     FormatJSON,
			field:      "colour",
			constraint: ConstraintAdditionalProperties,
		},
		{
			name:   "license is accepted",
			data:   strings.Replace(scenarioDocument, `"masking"`, `"license": "CC0", "masking"`, 1),
			format: FormatJSON,
		},
		{
			name:   "nested taxon keys are open",
			data:   strings.Replace(scenarioDocument, `"uri": "https://identifiers.org/taxonomy:7004"}`, `"uri": "https://identifiers.org/taxonomy:7004", "rank": "species"}`, 1),
			format: FormatJSON,
		},
		{
			name:   "nested author keys are open",
			data:   strings.Replace(scenarioDocument, `"uri": "https://orcid.org/0000-0001-0000-0000"}`, `"uri": "https://orcid.org/0000-0001-0000-0000", "affiliation": "Uni"}`, 1),
			format: FormatJSON,
		},
		{
			name:   "nested stats and accession keys are open",
			data:   strings.Replace(scenarioDocument, `"masking"`, `"vitalStats": {"N50": 10, "gcContent": 0.4}, "accessionID": {"name": "GCA_1", "db": "ena"}, "masking"`, 1),
			format: FormatJSON,
		},
		{
			name:       "nested constraints still apply",
			data:       strings.Replace(scenarioDocument, `"taxonomy:7004"}`, `"taxonomy:locust", "rank": "species"}`, 1),
			format:     FormatJSON,
			field:      "taxon.uri",
			constraint: ConstraintPattern,
		},
		{
			name:   "explicit zero schemaVersion is present",
			data:   strings.Replace(scenarioDocument, `"schemaVersion": 1`, `"schemaVersion": 0`, 1),
			format: FormatJSON,
		},
		{
			name:       "null counts as absent",
			data:       strings.Replace(scenarioDocument, `"version": "1.0.0"`, `"version": null`, 1),
			format:     FormatJSON,
			field:      "version",
			constraint: ConstraintRequired,
		},
		{
			name:       "wrong type",
			data:       strings.Replace(scenarioDocument, `"schemaVersion": 1`, `"schemaVersion": "one"`, 1),
			format:     FormatJSON,
			field:      "schemaVersion",
			constraint: ConstraintType,
		},
		{
			name:       "yaml date",
			data:       "schema: fhr.json\nschemaVersion: 1\ngenome: x\ntaxon:\n  name: x\n  uri: https://identifiers.org/taxonomy:1\nversion: '1'\nmetadataAuthor: []\nassemblyAuthor: []\ndateCreated: 2023-02-30\nmasking: not-masked\nchecksum: " + testChecksum + "\n",
			format:     FormatYAML,
			field:      "dateCreated",
			constraint: ConstraintFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := newTestValidator(t)
			result, err := v.ValidateDocument([]byte(tt.data), tt.format, "header"+tt.format.Extension())
			if err != nil {
				t.Fatal(err)
			}
			if tt.field == "" {
				if !result.Valid() {
					t.Errorf("unexpected violation: %v", result.Violation)
				}
				return
			}
			if result.Valid() {
				t.Fatal("expected a violation")
			}
			if result.Violation.Field != tt.field || result.Violation.Constraint != tt.constraint {
				t.Errorf("violation = %v, want %s on %s", result.Violation, tt.constraint, tt.field)
			}
		})
	}
}

func TestValidateDocumentErrors(t *testing.T) {
	t.Parallel()

	v := newTestValidator(t)
	if _, err := v.ValidateDocument([]byte("{"), FormatJSON, "x.json"); !errors.Is(err, ErrMalformedCarrier) {
		t.Errorf("expected ErrMalformedCarrier, got %v", err)
	}
	if _, err := v.ValidateDocument([]byte("#~schema: x"), FormatGFA, "x.gfa"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSchemaViolationError(t *testing.T) {
	t.Parallel()

	v := &SchemaViolation{Field: "taxon.uri", Constraint: ConstraintPattern, Message: "out of bound"}
	if got := v.Error(); got != "taxon.uri: violates pattern constraint: out of bound" {
		t.Errorf("Error() = %q", got)
	}
	v.Message = ""
	if got := v.Error(); got != "taxon.uri: violates pattern constraint" {
		t.Errorf("Error() = %q", got)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]Constraint{
		`conflicting values "x" and number (mismatched types string and number)`: ConstraintType,
		`field not allowed`: ConstraintAdditionalProperties,
		`invalid value "abc" (does not satisfy strings.MinRunes(44))`:           ConstraintLength,
		`invalid value "2023-13-01" (does not satisfy time.Format("2006-01-02"))`: ConstraintFormat,
		`invalid value "x" (out of bound =~"^10\\.")`:                            ConstraintPattern,
		`4 errors in empty disjunction:`:                                         ConstraintEnum,
		`conflicting values "bogus" and "soft-masked"`:                           ConstraintEnum,
		`incomplete value`:                                                       ConstraintSchema,
	}
	for msg, want := range tests {
		if got := classify(msg); got != want {
			t.Errorf("classify(%q) = %q, want %q", msg, got, want)
		}
	}
}
