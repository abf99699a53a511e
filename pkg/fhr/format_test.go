// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"errors"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "header.yml", want: FormatYAML},
		{path: "dir/header.YAML", want: FormatYAML},
		{path: "header.json", want: FormatJSON},
		{path: "genome.fasta", want: FormatFASTA},
		{path: "genome.fa", want: FormatFASTA},
		{path: "graph.gfa", want: FormatGFA},
		{path: "page.html", want: FormatHTML},
		{path: "page.htm", want: FormatHTML},
		{path: "header.txt", wantErr: true},
		{path: "header", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				var ufe *UnsupportedFormatError
				if !errors.As(err, &ufe) || ufe.Path != tt.path {
					t.Errorf("expected UnsupportedFormatError for %q, got %v", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"yaml":  FormatYAML,
		"yml":   FormatYAML,
		".yml":  FormatYAML,
		"JSON":  FormatJSON,
		"fa":    FormatFASTA,
		"fasta": FormatFASTA,
		"gfa":   FormatGFA,
		"htm":   FormatHTML,
	}
	for name, want := range tests {
		got, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q) error: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", name, got, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatExtension(t *testing.T) {
	t.Parallel()

	want := map[Format]string{
		FormatYAML:  ".yml",
		FormatJSON:  ".json",
		FormatFASTA: ".fasta",
		FormatGFA:   ".gfa",
		FormatHTML:  ".html",
	}
	for _, f := range Formats() {
		if got := f.Extension(); got != want[f] {
			t.Errorf("%s.Extension() = %q, want %q", f, got, want[f])
		}
		back, err := FormatFromPath("x" + f.Extension())
		if err != nil || back != f {
			t.Errorf("extension of %s does not map back: %q, %v", f, back, err)
		}
	}
}

func TestCodecFor(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		c, err := CodecFor(f)
		if err != nil {
			t.Fatalf("CodecFor(%s): %v", f, err)
		}
		if c.Name() != f.String() {
			t.Errorf("CodecFor(%s).Name() = %q", f, c.Name())
		}
	}

	if _, err := CodecFor("xml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("CodecFor(xml) error = %v", err)
	}
}
