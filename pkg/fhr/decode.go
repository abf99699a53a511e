// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"fmt"

	"github.com/charmbracelet/log"
)

type (
	// codecOptions holds settings shared by the codecs.
	codecOptions struct {
		logger *log.Logger
	}

	// CodecOption configures a codec returned by CodecFor.
	CodecOption func(*codecOptions)
)

// decodedKeys are the top-level keys the structured decoders dereference.
var decodedKeys = []string{
	"schema",
	"schemaVersion",
	"genome",
	"version",
	"metadataAuthor",
	"assemblyAuthor",
	"taxon",
	"dateCreated",
	"masking",
	"checksum",
}

// WithLogger sets the logger used for decode warnings. Nil disables them.
func WithLogger(logger *log.Logger) CodecOption {
	return func(o *codecOptions) {
		o.logger = logger
	}
}

func applyCodecOptions(opts []CodecOption) codecOptions {
	var o codecOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// requireKeys checks the generic document tree for every key the decoders dereference.
func requireKeys(doc map[string]any) error {
	for _, key := range decodedKeys {
		if _, ok := doc[key]; !ok {
			return &MissingFieldError{Key: key}
		}
	}

	taxon, _ := doc["taxon"].(map[string]any)
	for _, sub := range []string{"name", "uri"} {
		if _, ok := taxon[sub]; !ok {
			return &MissingFieldError{Key: "taxon." + sub}
		}
	}

	for _, list := range []string{"metadataAuthor", "assemblyAuthor"} {
		entries, _ := doc[list].([]any)
		for i, entry := range entries {
			author, _ := entry.(map[string]any)
			for _, sub := range []string{"name", "uri"} {
				if _, ok := author[sub]; !ok {
					return &MissingFieldError{Key: fmt.Sprintf("%s[%d].%s", list, i, sub)}
				}
			}
		}
	}
	return nil
}

// applyLegacyVoucherID reads the legacy top-level voucherID.name into accessionID.name
// when the document does not carry accessionID.name itself.
func applyLegacyVoucherID(doc map[string]any, h *Header, logger *log.Logger) {
	if accession, ok := doc["accessionID"].(map[string]any); ok {
		if _, has := accession["name"]; has {
			return
		}
	}
	voucher, ok := doc["voucherID"].(map[string]any)
	if !ok {
		return
	}
	name, ok := voucher["name"].(string)
	if !ok {
		return
	}
	h.AccessionID.Name = name
	if logger != nil {
		logger.Warn("read accessionID.name from legacy voucherID key", "name", name)
	}
}
