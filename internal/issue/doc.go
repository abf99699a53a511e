// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and remediation
// suggestions. Issue is a catalogue of Markdown guidance, rendered with glamour, for the
// failure classes the CLI reports (unsupported carrier, missing field, schema violation...).
package issue
