// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/fair-bioheaders/fhr/pkg/cueutil"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs everything.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"

	// DefaultCombineSuffix is appended to the graph base name by combine.
	DefaultCombineSuffix OutputSuffix = ".fht.gfa"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidOutputSuffix is returned when an OutputSuffix is empty or contains a path separator.
	ErrInvalidOutputSuffix = errors.New("invalid output suffix")
	// ErrInvalidMaxFileSize is returned when the file size limit is not positive.
	ErrInvalidMaxFileSize = errors.New("invalid max file size")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// OutputSuffix is appended to a file base name to form an output file name.
	OutputSuffix string

	// InvalidOutputSuffixError is returned when an OutputSuffix is unusable.
	InvalidOutputSuffixError struct {
		Value OutputSuffix
	}

	// FileSize is a size limit in bytes.
	FileSize int64

	// InvalidMaxFileSizeError is returned when a FileSize limit is zero or negative.
	InvalidMaxFileSizeError struct {
		Value FileSize
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Combine configures the combine command.
		Combine CombineConfig `json:"combine" mapstructure:"combine" toml:"combine"`
		// Convert configures the convert command.
		Convert ConvertConfig `json:"convert" mapstructure:"convert" toml:"convert"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
		// Log configures the CLI logger.
		Log LogConfig `json:"log" mapstructure:"log" toml:"log"`
		// Limits bounds the inputs the CLI accepts.
		Limits LimitsConfig `json:"limits" mapstructure:"limits" toml:"limits"`
	}

	// CombineConfig configures header embedding into graph files.
	CombineConfig struct {
		// Suffix replaces ".gfa" on the graph file name (default ".fht.gfa").
		Suffix OutputSuffix `json:"suffix" mapstructure:"suffix" toml:"suffix"`
		// Validate checks the header against the schema before embedding.
		Validate bool `json:"validate" mapstructure:"validate" toml:"validate"`
	}

	// ConvertConfig configures carrier conversion.
	ConvertConfig struct {
		// Validate checks the header against the schema before writing.
		Validate bool `json:"validate" mapstructure:"validate" toml:"validate"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level" toml:"level"`
	}

	// LimitsConfig bounds input sizes.
	LimitsConfig struct {
		// MaxFileSize is the largest metadata file read, in bytes. Graph bodies are streamed.
		MaxFileSize FileSize `json:"max_file_size" mapstructure:"max_file_size" toml:"max_file_size"`
	}
)

// IsValid returns whether the Config has valid fields, and the field errors if not.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Combine.Suffix.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Limits.MaxFileSize.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is known.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts to the logger's level. Unknown values map to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the OutputSuffix.
func (s OutputSuffix) String() string { return string(s) }

// IsValid returns whether the suffix is non-blank and free of path separators.
func (s OutputSuffix) IsValid() (bool, []error) {
	if strings.TrimSpace(string(s)) == "" || strings.ContainsAny(string(s), `/\`) {
		return false, []error{&InvalidOutputSuffixError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputSuffixError.
func (e *InvalidOutputSuffixError) Error() string {
	return fmt.Sprintf("invalid output suffix %q: must be non-empty and contain no path separator", e.Value)
}

// Unwrap returns ErrInvalidOutputSuffix for errors.Is() compatibility.
func (e *InvalidOutputSuffixError) Unwrap() error { return ErrInvalidOutputSuffix }

// IsValid returns whether the size limit is positive.
func (s FileSize) IsValid() (bool, []error) {
	if s <= 0 {
		return false, []error{&InvalidMaxFileSizeError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidMaxFileSizeError.
func (e *InvalidMaxFileSizeError) Error() string {
	return fmt.Sprintf("invalid max file size %d: must be positive", e.Value)
}

// Unwrap returns ErrInvalidMaxFileSize for errors.Is() compatibility.
func (e *InvalidMaxFileSizeError) Unwrap() error { return ErrInvalidMaxFileSize }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Combine: CombineConfig{
			Suffix:   DefaultCombineSuffix,
			Validate: false,
		},
		Convert: ConvertConfig{
			Validate: false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
		Limits: LimitsConfig{
			MaxFileSize: FileSize(cueutil.DefaultMaxFileSize),
		},
	}
}
