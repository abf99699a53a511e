// SPDX-License-Identifier: MPL-2.0

package testutil

import "strings"

// GraphBody is a four-line GFA graph without a header.
const GraphBody = "H\tVN:Z:1.0\nS\t1\tACGT\nS\t2\tTTGA\nL\t1\t+\t2\t+\t0M\n"

// Checksum is a well-formed (44 character, base64) checksum value.
var Checksum = strings.Repeat("A", 44)

// HeaderYAML returns a YAML header carrying every required field, valid against the schema.
func HeaderYAML() string {
	return `schema: fhr.json
schemaVersion: 1
genome: Locusta migratoria
taxon:
  name: Locusta migratoria
  uri: https://identifiers.org/taxonomy:7004
version: 1.0.0
metadataAuthor:
  - name: Adam Wright
    uri: https://orcid.org/0000-0002-5423-0185
assemblyAuthor:
  - name: Le Kang
    uri: https://orcid.org/0000-0003-4262-2329
dateCreated: "2023-01-01"
masking: soft-masked
checksum: ` + Checksum + "\n"
}
