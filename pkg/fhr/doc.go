// SPDX-License-Identifier: MPL-2.0

// Package fhr implements the FAIR Header Reference (FHR) genome-assembly metadata header.
//
// A Header is decoded from, and encoded to, one of five carriers:
//
//   - structured document (YAML)
//   - object notation (JSON)
//   - sequence-file comments (FASTA, lines prefixed with ";~")
//   - graph-file comments (GFA, lines prefixed with "#~")
//   - structured markup (HTML microdata)
//
// Codecs never validate. Validation is explicit and runs against an embedded CUE schema:
//
//	schema, err := fhr.LoadSchema()
//	if err != nil {
//	    return err
//	}
//	result, err := fhr.NewValidator(schema).Validate(header)
//	if err != nil {
//	    return err
//	}
//	if !result.Valid() {
//	    fmt.Println(result.Violation)
//	}
package fhr
