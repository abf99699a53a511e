// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"strings"
	"testing"
)

func TestMicrodataEncodeStructure(t *testing.T) {
	t.Parallel()

	out, err := MicrodataCodec{}.Encode(sampleHeader())
	if err != nil {
		t.Fatal(err)
	}
	text := string(out)

	for _, want := range []string{
		`<div itemscope="" itemtype="` + TypeID + `" version="1">`,
		`<span itemprop="genome">Locusta migratoria</span>`,
		`<span itemprop="metadataAuthor" itemscope=""><span itemprop="name">Adam Wright</span>`,
		`<span itemprop="taxon" itemscope=""><span itemprop="name">Locusta migratoria</span><span itemprop="uri">https://identifiers.org/taxonomy:7004</span></span>`,
		`<span itemprop="N50">320352</span>`,
		"</div>\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markup missing %q:\n%s", want, text)
		}
	}
	if strings.Count(text, `itemprop="genomeSynonym"`) != 2 {
		t.Errorf("expected one element per synonym:\n%s", text)
	}
	if strings.Count(text, "<span") != strings.Count(text, "</span>") {
		t.Error("unbalanced span elements")
	}
}

func TestMicrodataEncodeEscapes(t *testing.T) {
	t.Parallel()

	h := NewHeader()
	h.Genome = `<script>alert("x")</script> & co`
	out, err := MicrodataCodec{}.Encode(h)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Errorf("text was not escaped:\n%s", out)
	}
	got, err := MicrodataCodec{}.Decode(out)
	if err != nil {
		t.Fatal(err)
	}
	if got.Genome != h.Genome {
		t.Errorf("genome = %q, want %q", got.Genome, h.Genome)
	}
}

func TestMicrodataDecodeHandWritten(t *testing.T) {
	t.Parallel()

	page := `<!DOCTYPE html>
<html><head><title>Locust</title></head>
<body>
<div itemscope itemtype="https://schema.org/Dataset"><span itemprop="name">other item</span></div>
<article itemscope itemtype="` + TypeID + `" version="2">
  <h1 itemprop="genome">Locusta migratoria</h1>
  <p>Also known as <em itemprop="genomeSynonym">migratory locust</em>.</p>
  <meta itemprop="masking" content="hard-masked">
  <time itemprop="dateCreated" datetime="2023-01-01">January 1st</time>
  <a itemprop="relatedLink" href="https://example.org/locust">project page</a>
  <div itemprop="taxon" itemscope>
    <span itemprop="name">Locusta migratoria</span>
    <link itemprop="uri" href="https://identifiers.org/taxonomy:7004">
  </div>
  <ul>
    <li itemprop="metadataAuthor" itemscope><span itemprop="name">A</span> <a itemprop="uri" href="https://orcid.org/0000-0001-0000-0000">orcid</a></li>
  </ul>
  <div itemprop="vitalStats" itemscope><data itemprop="N50" value="1000">1k</data></div>
  <span itemprop="accessionID">GCA_1</span>
</article>
</body></html>`

	h, err := MicrodataCodec{}.Decode([]byte(page))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	checks := map[string][2]string{
		"genome":        {h.Genome, "Locusta migratoria"},
		"masking":       {string(h.Masking), "hard-masked"},
		"dateCreated":   {h.DateCreated, "2023-01-01"},
		"taxon.uri":     {h.Taxon.URI, "https://identifiers.org/taxonomy:7004"},
		"taxon.name":    {h.Taxon.Name, "Locusta migratoria"},
		"accessionID":   {h.AccessionID.Name, "GCA_1"},
		"author.uri":    {h.MetadataAuthor[0].URI, "https://orcid.org/0000-0001-0000-0000"},
		"relatedLink":   {h.RelatedLink[0], "https://example.org/locust"},
		"genomeSynonym": {h.GenomeSynonym[0], "migratory locust"},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}
	if h.SchemaVersion != 2 {
		t.Errorf("schemaVersion from version attribute = %v, want 2", h.SchemaVersion)
	}
	if h.VitalStats.N50 != 1000 {
		t.Errorf("vitalStats.N50 = %d, want 1000", h.VitalStats.N50)
	}
	if len(h.MetadataAuthor) != 1 || len(h.AssemblyAuthor) != 0 {
		t.Errorf("authors = %v / %v", h.MetadataAuthor, h.AssemblyAuthor)
	}
}

func TestMicrodataDecodeBadNumbers(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"schemaVersion": `<div itemscope itemtype="` + TypeID + `"><span itemprop="schemaVersion">one</span></div>`,
		"vitalStats":    `<div itemscope itemtype="` + TypeID + `"><span itemprop="vitalStats" itemscope><span itemprop="L50">many</span></span></div>`,
	}
	for name, page := range tests {
		if _, err := (MicrodataCodec{}).Decode([]byte(page)); err == nil || !strings.Contains(err.Error(), name) {
			t.Errorf("%s: expected a malformed carrier error, got %v", name, err)
		}
	}
}
