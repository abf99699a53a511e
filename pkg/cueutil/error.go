// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	stderrors "errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// FormatError formats a CUE error with JSON path prefixes.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - header.json: metadataAuthor[0].uri: invalid value "x" (out of bound =~"^https://orcid.org/...")
//   - config.cue: combine.validate: conflicting values "yes" and bool
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	// errors.Errors wraps plain errors into a one-item list, so detect them first.
	var ce errors.Error
	if !stderrors.As(err, &ce) {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	cueErrors := errors.Errors(err)

	var lines []string
	for _, e := range cueErrors {
		pathStr := FormatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path at the start of the message.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// FormatPath converts a CUE error path (["metadataAuthor", "0", "uri"]) to
// JSON-path notation ("metadataAuthor[0].uri").
func FormatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize verifies that data does not exceed maxSize bytes.
// An empty filename leaves the name out of the message.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) <= maxSize {
		return nil
	}
	if filename == "" {
		return fmt.Errorf("file size %d bytes exceeds maximum %d bytes", len(data), maxSize)
	}
	return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
		filename, len(data), maxSize)
}
