// SPDX-License-Identifier: MPL-2.0

package gfa

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/fair-bioheaders/fhr/pkg/fhr"
)

const graphBody = "H\tVN:Z:1.0\n" +
	"S\t1\tACGT\n" +
	"S\t2\tTTGA\r\n" +
	"# ordinary comment #~ with marker later\n" +
	" #~ indented marker\n" +
	"L\t1\t+\t2\t-\t0M"

func testHeader() *fhr.Header {
	h := fhr.NewHeader()
	h.Schema = "fhr.json"
	h.SchemaVersion = 1
	h.Genome = "Locusta migratoria"
	h.MetadataAuthor = []fhr.Author{{Name: "A", URI: "https://orcid.org/0000-0001-0000-0000"}}
	h.Taxon = fhr.Taxon{Name: "Locusta migratoria", URI: "https://identifiers.org/taxonomy:7004"}
	h.Masking = fhr.MaskingSoft
	return h
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "single line without terminator", text: "S\t1\tA", want: []string{"S\t1\tA"}},
		{name: "terminated", text: "a\nb\n", want: []string{"a\n", "b\n"}},
		{name: "unterminated last line", text: "a\nb", want: []string{"a\n", "b"}},
		{name: "crlf kept", text: "a\r\nb\r\n", want: []string{"a\r\n", "b\r\n"}},
		{name: "blank lines", text: "\n\n", want: []string{"\n", "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitLines(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if strings.Join(got, "") != tt.text {
				t.Error("joined lines differ from input")
			}
		})
	}
}

func TestStripScenario(t *testing.T) {
	t.Parallel()

	if got := StripText("#~schema: x\nS\t1\tACGT"); got != "S\t1\tACGT" {
		t.Errorf("StripText = %q, want %q", got, "S\t1\tACGT")
	}
	if got := Strip([]string{"#~schema: x\n", "S\t1\tACGT"}); !slices.Equal(got, []string{"S\t1\tACGT"}) {
		t.Errorf("Strip = %q", got)
	}
}

func TestStripKeepsMarkerOutsideColumnZero(t *testing.T) {
	t.Parallel()

	if got := StripText(graphBody); got != graphBody {
		t.Errorf("body without header lines changed:\n%q\n%q", got, graphBody)
	}
	if IsHeaderLine(" #~x") || IsHeaderLine("x#~") || IsHeaderLine(";~x") {
		t.Error("only a marker at column 0 marks a header line")
	}
	if !IsHeaderLine("#~") {
		t.Error("bare marker is a header line")
	}
}

func TestStripIdempotent(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		"#~a\n#~b\n",
		"#~a\nS\t1\tA\n#~b\nL\n",
		"#~#~nested\n#~\n",
		graphBody,
	}
	for _, text := range texts {
		once := StripText(text)
		if twice := StripText(once); twice != once {
			t.Errorf("strip is not idempotent for %q: %q then %q", text, once, twice)
		}
	}
}

func TestCombineThenStrip(t *testing.T) {
	t.Parallel()

	h := testHeader()
	body := SplitLines(graphBody)

	combined, err := Combine(h, body)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !strings.HasPrefix(combined, "#~schema: fhr.json\n#~schemaVersion: 1\n") {
		t.Errorf("header block must come first:\n%s", combined)
	}
	if !strings.HasSuffix(combined, graphBody) {
		t.Error("body must follow the header unchanged")
	}
	if got := StripText(combined); got != graphBody {
		t.Errorf("strip(combine(h, b)) != b\n got: %q\nwant: %q", got, graphBody)
	}

	decoded, err := fhr.GraphCodec.Decode([]byte(combined))
	if err != nil {
		t.Fatalf("decode combined file: %v", err)
	}
	if decoded.Genome != h.Genome || decoded.Taxon != h.Taxon {
		t.Errorf("decoded header differs: %#v", decoded)
	}
}

func TestCombineEmptyBody(t *testing.T) {
	t.Parallel()

	combined, err := Combine(testHeader(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if StripText(combined) != "" {
		t.Errorf("stripping a header-only file should leave nothing, got %q", StripText(combined))
	}
	for _, line := range SplitLines(combined) {
		if !IsHeaderLine(line) {
			t.Errorf("unexpected non-header line %q", line)
		}
	}
}

func TestWriteCombined(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteCombined(&buf, testHeader(), strings.NewReader(graphBody)); err != nil {
		t.Fatalf("WriteCombined: %v", err)
	}
	want, err := Combine(testHeader(), SplitLines(graphBody))
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != want {
		t.Errorf("WriteCombined and Combine disagree:\n%q\n%q", buf.String(), want)
	}
}

func TestStripReader(t *testing.T) {
	t.Parallel()

	combined, err := Combine(testHeader(), SplitLines(graphBody))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := StripReader(&out, strings.NewReader(combined)); err != nil {
		t.Fatalf("StripReader: %v", err)
	}
	if out.String() != graphBody {
		t.Errorf("StripReader = %q, want %q", out.String(), graphBody)
	}
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()

	if err := WriteCombined(failingWriter{}, testHeader(), strings.NewReader("S\n")); !errors.Is(err, errWrite) {
		t.Errorf("WriteCombined error = %v", err)
	}
	if err := StripReader(failingWriter{}, strings.NewReader("S\n")); !errors.Is(err, errWrite) {
		t.Errorf("StripReader error = %v", err)
	}
}
