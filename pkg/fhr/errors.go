// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is the sentinel error wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing field")
	// ErrMalformedCarrier is the sentinel error wrapped by MalformedCarrierError.
	ErrMalformedCarrier = errors.New("malformed carrier")
	// ErrUnsupportedFormat is the sentinel error wrapped by UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

type (
	// MissingFieldError is returned by a decoder when a key it requires is absent.
	// Key is a dotted path such as "taxon.uri" or "metadataAuthor[0].name".
	MissingFieldError struct {
		Key string
	}

	// MalformedCarrierError is returned when an embedded carrier holds no header
	// (no marked lines, no microdata item) or the header text cannot be parsed.
	MalformedCarrierError struct {
		Carrier string
		Reason  string
		Err     error
	}

	// UnsupportedFormatError is returned when a path or format name does not map to a carrier.
	UnsupportedFormatError struct {
		Path string
	}
)

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Key)
}

// Unwrap returns ErrMissingField for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// Error implements the error interface.
func (e *MalformedCarrierError) Error() string {
	msg := fmt.Sprintf("malformed %s carrier: %s", e.Carrier, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the sentinel and, when present, the underlying parse error.
func (e *MalformedCarrierError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedCarrier, e.Err}
	}
	return []error{ErrMalformedCarrier}
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported metadata format: %s", e.Path)
}

// Unwrap returns ErrUnsupportedFormat for errors.Is() compatibility.
func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}
