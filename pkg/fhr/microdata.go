// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TypeID identifies an FHR microdata item (its itemtype) and the schema itself.
const TypeID = "https://raw.githubusercontent.com/FAIR-bioHeaders/FHR-Specification/main/fhr.json"

type (
	// MicrodataCodec is the structured-markup carrier: an HTML microdata item
	// whose properties are the header fields.
	MicrodataCodec struct{}

	// itemProps maps a property name to its elements, in document order.
	itemProps map[string][]*html.Node
)

// Name returns "html".
func (MicrodataCodec) Name() string {
	return string(FormatHTML)
}

// Encode renders h as a microdata item. The markup is produced from a node tree,
// so every element is closed and all text is escaped.
func (MicrodataCodec) Encode(h *Header) ([]byte, error) {
	root := element(atom.Div,
		html.Attribute{Key: "itemscope"},
		html.Attribute{Key: "itemtype", Val: TypeID},
		html.Attribute{Key: "version", Val: formatNumber(h.SchemaVersion)},
	)
	add := func(n *html.Node) {
		root.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
		root.AppendChild(n)
	}
	authors := func(name string, entries []Author) {
		for _, a := range entries {
			add(item(name, property("name", a.Name), property("uri", a.URI)))
		}
	}
	list := func(name string, values []string) {
		for _, v := range values {
			add(property(name, v))
		}
	}

	for _, field := range FieldOrder {
		switch field {
		case "schema":
			add(property(field, h.Schema))
		case "schemaVersion":
			add(property(field, formatNumber(h.SchemaVersion)))
		case "genome":
			add(property(field, h.Genome))
		case "genomeSynonym":
			list(field, h.GenomeSynonym)
		case "version":
			add(property(field, h.Version))
		case "metadataAuthor":
			authors(field, h.MetadataAuthor)
		case "assemblyAuthor":
			authors(field, h.AssemblyAuthor)
		case "accessionID":
			add(item(field, property("name", h.AccessionID.Name), property("url", h.AccessionID.URL)))
		case "taxon":
			add(item(field, property("name", h.Taxon.Name), property("uri", h.Taxon.URI)))
		case "assemblySoftware":
			add(property(field, h.AssemblySoftware))
		case "voucherSpecimen":
			add(property(field, h.VoucherSpecimen))
		case "dateCreated":
			add(property(field, h.DateCreated))
		case "instrument":
			list(field, h.Instrument)
		case "scholarlyArticle":
			add(property(field, h.ScholarlyArticle))
		case "documentation":
			add(property(field, h.Documentation))
		case "identifier":
			list(field, h.Identifier)
		case "relatedLink":
			list(field, h.RelatedLink)
		case "funding":
			add(property(field, h.Funding))
		case "masking":
			add(property(field, string(h.Masking)))
		case "vitalStats":
			stats := make([]*html.Node, 0, len(vitalStatsOrder))
			for _, stat := range vitalStatsOrder {
				stats = append(stats, property(stat, h.VitalStats.value(stat)))
			}
			add(item(field, stats...))
		case "reuseConditions":
			add(property(field, h.ReuseConditions))
		case "checksum":
			add(property(field, h.Checksum))
		}
	}
	root.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render microdata: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Decode reads the first microdata item typed TypeID.
func (c MicrodataCodec) Decode(data []byte) (*Header, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "unparseable markup", Err: err}
	}
	container := findItem(doc)
	if container == nil {
		return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "no item with itemtype " + strconv.Quote(TypeID)}
	}

	props := collectProps(container)
	h := NewHeader()
	h.Schema = props.text("schema")
	h.Genome = props.text("genome")
	h.GenomeSynonym = props.texts("genomeSynonym")
	h.Version = props.text("version")
	h.MetadataAuthor = props.authors("metadataAuthor")
	h.AssemblyAuthor = props.authors("assemblyAuthor")
	h.AssemblySoftware = props.text("assemblySoftware")
	h.VoucherSpecimen = props.text("voucherSpecimen")
	h.DateCreated = props.text("dateCreated")
	h.Instrument = props.texts("instrument")
	h.ScholarlyArticle = props.text("scholarlyArticle")
	h.Documentation = props.text("documentation")
	h.Identifier = props.texts("identifier")
	h.RelatedLink = props.texts("relatedLink")
	h.Funding = props.text("funding")
	h.Masking = Masking(props.text("masking"))
	h.ReuseConditions = props.text("reuseConditions")
	h.Checksum = props.text("checksum")

	if accession, nested := props.item("accessionID"); nested != nil {
		h.AccessionID = AccessionID{Name: nested.text("name"), URL: nested.text("url")}
	} else if accession != nil {
		h.AccessionID.Name = propValue(accession)
	}
	if taxon, nested := props.item("taxon"); nested != nil {
		h.Taxon = Taxon{Name: nested.text("name"), URI: nested.text("uri")}
	} else if taxon != nil {
		h.Taxon.Name = propValue(taxon)
	}

	version := props.text("schemaVersion")
	if _, ok := props["schemaVersion"]; !ok {
		version = attr(container, "version")
	}
	if version != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(version), 64)
		if err != nil {
			return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "schemaVersion is not a number", Err: err}
		}
		h.SchemaVersion = v
	}

	if _, stats := props.item("vitalStats"); stats != nil {
		for _, key := range vitalStatsOrder {
			text := stats.text(key)
			if text == "" {
				continue
			}
			if err := h.VitalStats.set(key, text); err != nil {
				return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "vitalStats." + key + " is not an integer", Err: err}
			}
		}
	}
	return h, nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func property(name, text string) *html.Node {
	n := element(atom.Span, html.Attribute{Key: "itemprop", Val: name})
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func item(name string, children ...*html.Node) *html.Node {
	n := element(atom.Span, html.Attribute{Key: "itemprop", Val: name}, html.Attribute{Key: "itemscope"})
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	return slices.ContainsFunc(n.Attr, func(a html.Attribute) bool { return a.Key == key })
}

// findItem returns the first top-level FHR item in document order.
func findItem(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && hasAttr(n, "itemscope") && slices.Contains(strings.Fields(attr(n, "itemtype")), TypeID) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findItem(c); found != nil {
			return found
		}
	}
	return nil
}

// collectProps gathers the properties belonging to the item scope, without
// entering nested items.
func collectProps(scope *html.Node) itemProps {
	props := itemProps{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			names := strings.Fields(attr(c, "itemprop"))
			for _, name := range names {
				props[name] = append(props[name], c)
			}
			if hasAttr(c, "itemscope") {
				continue
			}
			walk(c)
		}
	}
	walk(scope)
	return props
}

func (p itemProps) text(name string) string {
	if nodes := p[name]; len(nodes) > 0 {
		return propValue(nodes[0])
	}
	return ""
}

func (p itemProps) texts(name string) []string {
	values := make([]string, 0, len(p[name]))
	for _, n := range p[name] {
		values = append(values, propValue(n))
	}
	return values
}

// item returns the first element of a property and, when it is a nested item, its properties.
func (p itemProps) item(name string) (*html.Node, itemProps) {
	nodes := p[name]
	if len(nodes) == 0 {
		return nil, nil
	}
	if hasAttr(nodes[0], "itemscope") {
		return nodes[0], collectProps(nodes[0])
	}
	return nodes[0], nil
}

func (p itemProps) authors(name string) []Author {
	authors := make([]Author, 0, len(p[name]))
	for _, n := range p[name] {
		if hasAttr(n, "itemscope") {
			nested := collectProps(n)
			authors = append(authors, Author{Name: nested.text("name"), URI: nested.text("uri")})
			continue
		}
		authors = append(authors, Author{Name: propValue(n)})
	}
	return authors
}

// propValue follows the microdata value rules for the elements FHR markup uses.
func propValue(n *html.Node) string {
	switch n.DataAtom {
	case atom.Meta:
		return attr(n, "content")
	case atom.A, atom.Link, atom.Area:
		return attr(n, "href")
	case atom.Time:
		if hasAttr(n, "datetime") {
			return attr(n, "datetime")
		}
	case atom.Data, atom.Meter:
		return attr(n, "value")
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
