// SPDX-License-Identifier: MPL-2.0

package fhr

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// JSONCodec is the object-notation carrier.
type JSONCodec struct {
	// Logger receives decode warnings. Nil is silent.
	Logger *log.Logger
}

// Name returns "json".
func (JSONCodec) Name() string {
	return string(FormatJSON)
}

// Decode parses a JSON object. Required keys must be present.
func (c JSONCodec) Decode(data []byte) (*Header, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "invalid document", Err: err}
	}
	if err := requireKeys(doc); err != nil {
		return nil, err
	}

	h := NewHeader()
	if err := json.Unmarshal(data, h); err != nil {
		return nil, &MalformedCarrierError{Carrier: c.Name(), Reason: "invalid field value", Err: err}
	}
	applyLegacyVoucherID(doc, h, c.Logger)
	h.fillEmptyLists()
	return h, nil
}

// Encode renders every field, empty lists and objects included, in FieldOrder.
func (c JSONCodec) Encode(h *Header) ([]byte, error) {
	out, err := json.MarshalIndent(h.withEmptyLists(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(out, '\n'), nil
}
