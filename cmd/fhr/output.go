// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fair-bioheaders/fhr/internal/config"
	"github.com/fair-bioheaders/fhr/internal/issue"
)

// errSameFile is returned when an output path names the input being read.
var errSameFile = errors.New("output file is the input file")

// combinedOutputPath replaces the graph file extension with suffix, keeping the directory.
func combinedOutputPath(graph string, suffix config.OutputSuffix) string {
	return strings.TrimSuffix(graph, filepath.Ext(graph)) + suffix.String()
}

// sameFile reports whether two paths name the same existing file.
func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// writeFile creates path and streams write into it through a buffer.
// A partially written file is removed on failure.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return issue.WrapWithContext(err, "create output", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = issue.WrapWithContext(closeErr, "write output", path)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return issue.WrapWithContext(err, "write output", path)
	}
	if err := bw.Flush(); err != nil {
		return issue.WrapWithContext(err, "write output", path)
	}
	return nil
}
