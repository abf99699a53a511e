// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	"cuelang.org/go/cue/cuecontext"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "config.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with filepath", func(t *testing.T) {
		t.Parallel()

		originalErr := errors.New("some error")
		err := FormatError(originalErr, "config.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "config.cue") {
			t.Errorf("error should contain filepath, got: %v", err)
		}
		if !errors.Is(err, originalErr) {
			t.Errorf("error should wrap the original, got: %v", err)
		}
	})

	t.Run("CUE error is prefixed with its path", func(t *testing.T) {
		t.Parallel()

		v := cuecontext.New().CompileString("combine: validate: bool\ncombine: validate: \"yes\"")
		err := FormatError(v.Validate(), "config.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.HasPrefix(err.Error(), "config.cue: ") || !strings.Contains(err.Error(), "combine.validate: ") {
			t.Errorf("error should carry file and JSON path, got: %v", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{name: "empty path", path: []string{}, expected: ""},
		{name: "single element", path: []string{"checksum"}, expected: "checksum"},
		{name: "nested path", path: []string{"taxon", "uri"}, expected: "taxon.uri"},
		{name: "array index", path: []string{"metadataAuthor", "0", "uri"}, expected: "metadataAuthor[0].uri"},
		{name: "trailing index", path: []string{"identifier", "3"}, expected: "identifier[3]"},
		{name: "numeric-looking key at root", path: []string{"50"}, expected: "50"},
		{name: "statistic keys", path: []string{"vitalStats", "N50"}, expected: "vitalStats.N50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatPath(tt.path); got != tt.expected {
				t.Errorf("FormatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "within limit", size: 11, wantErr: false},
		{name: "at exact limit", size: 100, wantErr: false},
		{name: "exceeding limit", size: 101, wantErr: true},
		{name: "empty", size: 0, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckFileSize(make([]byte, tt.size), 100, "header.yml")
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckFileSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && (!strings.Contains(err.Error(), "header.yml") || !strings.Contains(err.Error(), "101")) {
				t.Errorf("error should name the file and size, got: %v", err)
			}
		})
	}

	t.Run("unnamed", func(t *testing.T) {
		t.Parallel()

		err := CheckFileSize(make([]byte, 101), 100, "")
		if err == nil || strings.HasPrefix(err.Error(), ":") || !strings.HasPrefix(err.Error(), "file size 101") {
			t.Errorf("CheckFileSize() error = %v, want unprefixed size message", err)
		}
	})
}
