// SPDX-License-Identifier: MPL-2.0

package gfa

import (
	"fmt"
	"io"
	"strings"

	"github.com/fair-bioheaders/fhr/pkg/fhr"
)

// Combine returns the encoded header followed by body. Body lines are expected to carry
// their own terminators (see SplitLines) and are written unchanged.
func Combine(h *fhr.Header, body []string) (string, error) {
	header, err := fhr.GraphCodec.Encode(h)
	if err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}

	var b strings.Builder
	b.Write(header)
	for _, line := range body {
		b.WriteString(line)
	}
	return b.String(), nil
}

// WriteCombined writes the encoded header to w, then copies body verbatim.
func WriteCombined(w io.Writer, h *fhr.Header, body io.Reader) error {
	header, err := fhr.GraphCodec.Encode(h)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = io.Copy(w, body)
	return err
}
