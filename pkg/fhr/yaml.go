// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// YAMLCodec is the structured-document carrier.
type YAMLCodec struct {
	// Logger receives decode warnings. Nil is silent.
	Logger *log.Logger
}

// Name returns "yaml".
func (YAMLCodec) Name() string {
	return string(FormatYAML)
}

// Decode parses a YAML document. Required keys must be present.
func (c YAMLCodec) Decode(data []byte) (*Header, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "invalid document", Err: err}
	}
	if err := requireKeys(doc); err != nil {
		return nil, err
	}

	h := NewHeader()
	if err := yaml.Unmarshal(data, h); err != nil {
		return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "invalid field value", Err: err}
	}
	applyLegacyVoucherID(doc, h, c.Logger)
	h.fillEmptyLists()
	return h, nil
}

// Encode renders every field, empty lists and objects included, in FieldOrder.
func (c YAMLCodec) Encode(h *Header) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(h.withEmptyLists()); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
