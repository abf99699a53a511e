// SPDX-License-Identifier: MPL-2.0

package fhr

import "slices"

const (
	// MaskingNone marks an assembly without any masking.
	MaskingNone Masking = "not-masked"
	// MaskingHard marks an assembly whose repeats were replaced with N.
	MaskingHard Masking = "hard-masked"
	// MaskingSoft marks an assembly whose repeats were lower-cased.
	MaskingSoft Masking = "soft-masked"
	// MaskingRepeat marks an assembly masked with a repeat library.
	MaskingRepeat Masking = "repeat-masked"
)

// FieldOrder is the emission order of top-level fields shared by every text carrier.
var FieldOrder = []string{
	"schema",
	"schemaVersion",
	"genome",
	"genomeSynonym",
	"version",
	"metadataAuthor",
	"assemblyAuthor",
	"accessionID",
	"taxon",
	"assemblySoftware",
	"voucherSpecimen",
	"dateCreated",
	"instrument",
	"scholarlyArticle",
	"documentation",
	"identifier",
	"relatedLink",
	"funding",
	"masking",
	"vitalStats",
	"reuseConditions",
	"checksum",
}

// vitalStatsOrder is the fixed order of the vitalStats sub-fields.
var vitalStatsOrder = []string{
	"N50",
	"L50",
	"L90",
	"totalBasePairs",
	"numberContigs",
	"numberScaffolds",
	"readTechnology",
}

type (
	// Masking describes the masking applied to the genome assembly.
	// The value is carried as-is; only validation checks it against the allowed set.
	Masking string

	// Header is an FHR metadata header.
	//
	// Field order matches FieldOrder so that reflection-based encoders
	// (YAML, JSON) emit the same order as the comment and markup carriers.
	Header struct {
		Schema           string      `json:"schema" yaml:"schema"`
		SchemaVersion    float64     `json:"schemaVersion" yaml:"schemaVersion"`
		Genome           string      `json:"genome" yaml:"genome"`
		GenomeSynonym    []string    `json:"genomeSynonym" yaml:"genomeSynonym"`
		Version          string      `json:"version" yaml:"version"`
		MetadataAuthor   []Author    `json:"metadataAuthor" yaml:"metadataAuthor"`
		AssemblyAuthor   []Author    `json:"assemblyAuthor" yaml:"assemblyAuthor"`
		AccessionID      AccessionID `json:"accessionID" yaml:"accessionID"`
		Taxon            Taxon       `json:"taxon" yaml:"taxon"`
		AssemblySoftware string      `json:"assemblySoftware" yaml:"assemblySoftware"`
		VoucherSpecimen  string      `json:"voucherSpecimen" yaml:"voucherSpecimen"`
		DateCreated      string      `json:"dateCreated" yaml:"dateCreated"`
		Instrument       []string    `json:"instrument" yaml:"instrument"`
		ScholarlyArticle string      `json:"scholarlyArticle" yaml:"scholarlyArticle"`
		Documentation    string      `json:"documentation" yaml:"documentation"`
		Identifier       []string    `json:"identifier" yaml:"identifier"`
		RelatedLink      []string    `json:"relatedLink" yaml:"relatedLink"`
		Funding          string      `json:"funding" yaml:"funding"`
		Masking          Masking     `json:"masking" yaml:"masking"`
		VitalStats       VitalStats  `json:"vitalStats" yaml:"vitalStats"`
		ReuseConditions  string      `json:"reuseConditions" yaml:"reuseConditions"`
		Checksum         string      `json:"checksum" yaml:"checksum"`
	}

	// Author is a metadata or assembly author (person or organisation).
	Author struct {
		Name string `json:"name" yaml:"name"`
		// URI is an ORCID URI.
		URI string `json:"uri" yaml:"uri"`
	}

	// Taxon names the species and its identifiers.org taxonomy URI.
	Taxon struct {
		Name string `json:"name" yaml:"name"`
		URI  string `json:"uri" yaml:"uri"`
	}

	// AccessionID identifies the assembly in a public archive.
	AccessionID struct {
		Name string `json:"name" yaml:"name"`
		URL  string `json:"url" yaml:"url"`
	}

	// VitalStats holds contiguity statistics. They are carried opaquely, never computed.
	VitalStats struct {
		N50             int64  `json:"N50" yaml:"N50"`
		L50             int64  `json:"L50" yaml:"L50"`
		L90             int64  `json:"L90" yaml:"L90"`
		TotalBasePairs  int64  `json:"totalBasePairs" yaml:"totalBasePairs"`
		NumberContigs   int64  `json:"numberContigs" yaml:"numberContigs"`
		NumberScaffolds int64  `json:"numberScaffolds" yaml:"numberScaffolds"`
		ReadTechnology  string `json:"readTechnology" yaml:"readTechnology"`
	}
)

// NewHeader returns an empty header with every list present and empty.
func NewHeader() *Header {
	return &Header{
		GenomeSynonym:  []string{},
		MetadataAuthor: []Author{},
		AssemblyAuthor: []Author{},
		Instrument:     []string{},
		Identifier:     []string{},
		RelatedLink:    []string{},
	}
}

// Maskings returns the allowed masking values.
func Maskings() []Masking {
	return []Masking{MaskingNone, MaskingHard, MaskingSoft, MaskingRepeat}
}

// IsValid reports whether m is one of the allowed masking values.
func (m Masking) IsValid() bool {
	return slices.Contains(Maskings(), m)
}

// String returns the masking value.
func (m Masking) String() string {
	return string(m)
}

// Clone returns a deep copy of h.
func (h *Header) Clone() *Header {
	c := *h
	c.GenomeSynonym = slices.Clone(h.GenomeSynonym)
	c.MetadataAuthor = slices.Clone(h.MetadataAuthor)
	c.AssemblyAuthor = slices.Clone(h.AssemblyAuthor)
	c.Instrument = slices.Clone(h.Instrument)
	c.Identifier = slices.Clone(h.Identifier)
	c.RelatedLink = slices.Clone(h.RelatedLink)
	return &c
}

// withEmptyLists returns a copy of h whose nil lists are replaced by empty ones.
// Encoders use it so an absent list is still written as an empty one.
func (h *Header) withEmptyLists() *Header {
	c := h.Clone()
	c.fillEmptyLists()
	return c
}

func (h *Header) fillEmptyLists() {
	if h.GenomeSynonym == nil {
		h.GenomeSynonym = []string{}
	}
	if h.MetadataAuthor == nil {
		h.MetadataAuthor = []Author{}
	}
	if h.AssemblyAuthor == nil {
		h.AssemblyAuthor = []Author{}
	}
	if h.Instrument == nil {
		h.Instrument = []string{}
	}
	if h.Identifier == nil {
		h.Identifier = []string{}
	}
	if h.RelatedLink == nil {
		h.RelatedLink = []string{}
	}
}
