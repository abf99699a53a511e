// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"bufio"
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// SequenceMarker prefixes header lines embedded in FASTA files.
	SequenceMarker = ";~"
	// GraphMarker prefixes header lines embedded in GFA files.
	GraphMarker = "#~"
)

const (
	lineScalar lineShape = iota
	lineSection
	lineItem
	lineSubKey
	lineAuthorName
	lineAuthorURI
	lineStat
)

var (
	// SequenceCodec is the FASTA comment carrier.
	SequenceCodec = CommentCodec{Marker: SequenceMarker, Carrier: string(FormatFASTA)}
	// GraphCodec is the GFA comment carrier.
	GraphCodec = CommentCodec{Marker: GraphMarker, Carrier: string(FormatGFA)}

	// Compact shapes written by Encode, rewritten to block YAML before parsing.
	subKeyLine     = regexp.MustCompile(`^  (name|uri|url):(.*)$`)
	authorNameLine = regexp.MustCompile(`^- name:(.*)$`)
	statLine       = regexp.MustCompile(`^-(N50|L50|L90|totalBasePairs|numberContigs|numberScaffolds|readTechnology):(.*)$`)
)

type (
	// CommentCodec embeds a header in a host text file as marker-prefixed lines.
	// All other lines of the host file are ignored on decode.
	CommentCodec struct {
		Marker  string
		Carrier string
		// Logger receives decode warnings. Nil is silent.
		Logger *log.Logger
	}

	lineShape int

	// headerLine is one rendered line before the marker is applied.
	headerLine struct {
		shape lineShape
		key   string
		value string
	}
)

// Name returns the carrier name.
func (c CommentCodec) Name() string {
	return c.Carrier
}

// Decode collects every line starting with the marker, strips it and parses the
// remainder as a structured document.
func (c CommentCodec) Decode(data []byte) (*Header, error) {
	var doc strings.Builder
	found := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		rest, ok := strings.CutPrefix(line, c.Marker)
		if !ok {
			continue
		}
		found = true
		doc.WriteString(expandCompactLine(rest))
		doc.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "unreadable text", Err: err}
	}
	if !found {
		return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "no lines marked with " + strconv.Quote(c.Marker)}
	}

	h, err := YAMLCodec{Logger: c.Logger}.Decode([]byte(doc.String()))
	if err != nil {
		var mc *MalformedCarrierError
		if errors.As(err, &mc) {
			mc.Carrier = c.Name()
		}
		return nil, err
	}
	return h, nil
}

// Encode renders one marker-prefixed line per scalar, list item and sub-key, in FieldOrder.
func (c CommentCodec) Encode(h *Header) ([]byte, error) {
	var buf bytes.Buffer
	for _, l := range headerLines(h) {
		buf.WriteString(c.Marker)
		buf.WriteString(l.render())
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// headerLines flattens h into the carrier line sequence.
func headerLines(h *Header) []headerLine {
	var lines []headerLine
	scalar := func(key, value string) {
		lines = append(lines, headerLine{shape: lineScalar, key: key, value: value})
	}
	list := func(key string, items []string) {
		lines = append(lines, headerLine{shape: lineSection, key: key})
		for _, item := range items {
			lines = append(lines, headerLine{shape: lineItem, value: item})
		}
	}
	authors := func(key string, entries []Author) {
		lines = append(lines, headerLine{shape: lineSection, key: key})
		for _, a := range entries {
			lines = append(lines,
				headerLine{shape: lineAuthorName, key: "name", value: a.Name},
				headerLine{shape: lineAuthorURI, key: "uri", value: a.URI},
			)
		}
	}
	object := func(key string, pairs ...string) {
		lines = append(lines, headerLine{shape: lineSection, key: key})
		for i := 0; i+1 < len(pairs); i += 2 {
			lines = append(lines, headerLine{shape: lineSubKey, key: pairs[i], value: pairs[i+1]})
		}
	}

	for _, field := range FieldOrder {
		switch field {
		case "schema":
			scalar(field, h.Schema)
		case "schemaVersion":
			scalar(field, formatNumber(h.SchemaVersion))
		case "genome":
			scalar(field, h.Genome)
		case "genomeSynonym":
			list(field, h.GenomeSynonym)
		case "version":
			scalar(field, h.Version)
		case "metadataAuthor":
			authors(field, h.MetadataAuthor)
		case "assemblyAuthor":
			authors(field, h.AssemblyAuthor)
		case "accessionID":
			object(field, "name", h.AccessionID.Name, "url", h.AccessionID.URL)
		case "taxon":
			object(field, "name", h.Taxon.Name, "uri", h.Taxon.URI)
		case "assemblySoftware":
			scalar(field, h.AssemblySoftware)
		case "voucherSpecimen":
			scalar(field, h.VoucherSpecimen)
		case "dateCreated":
			scalar(field, h.DateCreated)
		case "instrument":
			list(field, h.Instrument)
		case "scholarlyArticle":
			scalar(field, h.ScholarlyArticle)
		case "documentation":
			scalar(field, h.Documentation)
		case "identifier":
			list(field, h.Identifier)
		case "relatedLink":
			list(field, h.RelatedLink)
		case "funding":
			scalar(field, h.Funding)
		case "masking":
			scalar(field, string(h.Masking))
		case "vitalStats":
			lines = append(lines, headerLine{shape: lineSection, key: field})
			for _, stat := range vitalStatsOrder {
				lines = append(lines, headerLine{shape: lineStat, key: stat, value: h.VitalStats.value(stat)})
			}
		case "reuseConditions":
			scalar(field, h.ReuseConditions)
		case "checksum":
			scalar(field, h.Checksum)
		}
	}
	return lines
}

// render shapes a line without its marker.
func (l headerLine) render() string {
	switch l.shape {
	case lineSection:
		return l.key + ":"
	case lineItem:
		v := yamlScalar(l.value)
		if strings.HasPrefix(v, "name:") {
			v = strconv.Quote(l.value)
		}
		return "- " + v
	case lineSubKey, lineAuthorURI:
		return "  " + l.key + ":" + yamlScalar(l.value)
	case lineAuthorName:
		return "- " + l.key + ":" + yamlScalar(l.value)
	case lineStat:
		return "-" + l.key + ": " + yamlScalar(l.value)
	default:
		return l.key + ": " + yamlScalar(l.value)
	}
}

// expandCompactLine rewrites the compact sub-key shapes into block YAML.
func expandCompactLine(line string) string {
	if m := subKeyLine.FindStringSubmatch(line); m != nil {
		return "  " + m[1] + ": " + m[2]
	}
	if m := authorNameLine.FindStringSubmatch(line); m != nil {
		return "- name: " + m[1]
	}
	if m := statLine.FindStringSubmatch(line); m != nil {
		return "  " + m[1] + ":" + m[2]
	}
	return line
}

// yamlScalar returns s unchanged when YAML reads it back verbatim as a plain
// scalar, otherwise a double-quoted scalar. The empty string stays empty.
func yamlScalar(s string) string {
	if s == "" || isPlainSafe(s) {
		return s
	}
	return strconv.Quote(s)
}

func isPlainSafe(s string) bool {
	if strings.TrimSpace(s) != s {
		return false
	}
	if strings.ContainsAny(s, "\n\r\t\"\\") || strings.ContainsFunc(s, func(r rune) bool { return !strconv.IsPrint(r) }) {
		return false
	}
	if strings.ContainsRune("-?:,[]{}#&*!|>'%@`", rune(s[0])) {
		return false
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") || strings.HasSuffix(s, ":") {
		return false
	}
	switch strings.ToLower(s) {
	case "null", "~":
		return false
	}
	return true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// value returns the text of a vitalStats sub-field.
func (v VitalStats) value(key string) string {
	switch key {
	case "N50":
		return strconv.FormatInt(v.N50, 10)
	case "L50":
		return strconv.FormatInt(v.L50, 10)
	case "L90":
		return strconv.FormatInt(v.L90, 10)
	case "totalBasePairs":
		return strconv.FormatInt(v.TotalBasePairs, 10)
	case "numberContigs":
		return strconv.FormatInt(v.NumberContigs, 10)
	case "numberScaffolds":
		return strconv.FormatInt(v.NumberScaffolds, 10)
	case "readTechnology":
		return v.ReadTechnology
	}
	return ""
}

// set parses the text of a vitalStats sub-field.
func (v *VitalStats) set(key, text string) error {
	if key == "readTechnology" {
		v.ReadTechnology = text
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return err
	}
	switch key {
	case "N50":
		v.N50 = n
	case "L50":
		v.L50 = n
	case "L90":
		v.L90 = n
	case "totalBasePairs":
		v.TotalBasePairs = n
	case "numberContigs":
		v.NumberContigs = n
	case "numberScaffolds":
		v.NumberScaffolds = n
	}
	return nil
}
