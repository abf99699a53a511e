// SPDX-License-Identifier: MPL-2.0

// Package config handles fhr configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/fhr/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/fhr/config.cue on macOS, %APPDATA%\fhr\config.cue on
// Windows), or from ./config.cue when no user file exists. FHR_* environment variables
// override file values (FHR_COMBINE_SUFFIX overrides combine.suffix).
//
// Files are validated against the embedded config_schema.cue before they are merged.
package config
