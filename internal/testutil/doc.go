// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers and fixtures shared by the fhr test suites.
//
// The Must* helpers fail the test immediately instead of returning errors.
// The fixtures are small, schema-valid inputs: a YAML header and a GFA body.
package testutil
