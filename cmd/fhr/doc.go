// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the fhr command tree.
//
// The root command wires the App (configuration provider, logger, schema) and
// registers combine, strip, convert, validate and config. Handlers return
// *ExitError to request a specific process exit code.
package cmd
