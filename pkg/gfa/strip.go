// SPDX-License-Identifier: MPL-2.0

package gfa

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/fair-bioheaders/fhr/pkg/fhr"
)

// IsHeaderLine reports whether line starts with the graph marker at column 0.
func IsHeaderLine(line string) bool {
	return strings.HasPrefix(line, fhr.GraphMarker)
}

// Strip returns the lines that are not header lines, in order, unchanged.
func Strip(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if !IsHeaderLine(line) {
			kept = append(kept, line)
		}
	}
	return kept
}

// StripText removes header lines from text, keeping every other byte.
func StripText(text string) string {
	return strings.Join(Strip(SplitLines(text)), "")
}

// StripReader copies r to w without header lines.
func StripReader(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && !IsHeaderLine(line) {
			if _, werr := io.WriteString(w, line); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// SplitLines splits text after each "\n", keeping the terminators.
// A final line without terminator is kept; no empty trailing element is produced.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
