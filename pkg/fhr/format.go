// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"path/filepath"
	"strings"
)

const (
	// FormatYAML is the structured-document carrier.
	FormatYAML Format = "yaml"
	// FormatJSON is the object-notation carrier.
	FormatJSON Format = "json"
	// FormatFASTA is the sequence-file comment carrier.
	FormatFASTA Format = "fasta"
	// FormatGFA is the graph-file comment carrier.
	FormatGFA Format = "gfa"
	// FormatHTML is the structured-markup (microdata) carrier.
	FormatHTML Format = "html"
)

type (
	// Format names a carrier.
	Format string

	// Codec converts a Header to and from one carrier.
	Codec interface {
		// Name returns the carrier name used in error messages.
		Name() string
		// Decode builds a header from carrier text. It never returns a partial header.
		Decode(data []byte) (*Header, error)
		// Encode renders h. It does not validate and does not modify h.
		Encode(h *Header) ([]byte, error)
	}
)

var extensionFormats = map[string]Format{
	".yml":   FormatYAML,
	".yaml":  FormatYAML,
	".json":  FormatJSON,
	".fasta": FormatFASTA,
	".fa":    FormatFASTA,
	".gfa":   FormatGFA,
	".html":  FormatHTML,
	".htm":   FormatHTML,
}

// Formats returns every supported carrier.
func Formats() []Format {
	return []Format{FormatYAML, FormatJSON, FormatFASTA, FormatGFA, FormatHTML}
}

// FormatFromPath picks the carrier from the file extension (case-insensitive).
func FormatFromPath(path string) (Format, error) {
	f, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", &UnsupportedFormatError{Path: path}
	}
	return f, nil
}

// ParseFormat accepts a carrier name ("yaml", "json", ...) or a bare extension ("yml", "fa").
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimPrefix(name, "."))
	for _, f := range Formats() {
		if string(f) == n {
			return f, nil
		}
	}
	if f, ok := extensionFormats["."+n]; ok {
		return f, nil
	}
	return "", &UnsupportedFormatError{Path: name}
}

// Extension returns the canonical file extension of the carrier.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yml"
	}
	return "." + string(f)
}

// String returns the carrier name.
func (f Format) String() string {
	return string(f)
}

// CodecFor returns the codec of a carrier.
func CodecFor(f Format, opts ...CodecOption) (Codec, error) {
	o := applyCodecOptions(opts)
	switch f {
	case FormatYAML:
		return YAMLCodec{Logger: o.logger}, nil
	case FormatJSON:
		return JSONCodec{Logger: o.logger}, nil
	case FormatFASTA:
		c := SequenceCodec
		c.Logger = o.logger
		return c, nil
	case FormatGFA:
		c := GraphCodec
		c.Logger = o.logger
		return c, nil
	case FormatHTML:
		return MicrodataCodec{}, nil
	default:
		return nil, &UnsupportedFormatError{Path: string(f)}
	}
}
