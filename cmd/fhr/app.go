// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/fair-bioheaders/fhr/internal/config"
	"github.com/fair-bioheaders/fhr/internal/issue"
	"github.com/fair-bioheaders/fhr/pkg/cueutil"
	"github.com/fair-bioheaders/fhr/pkg/fhr"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra handler receives an App and reads configuration,
	// logging and the schema through it.
	App struct {
		Config config.Provider
		Logger *log.Logger
		stdout io.Writer
		stderr io.Writer

		schema func() (*fhr.Schema, error)

		// Request-scoped state set by the root command before any handler runs.
		flags  rootFlags
		loaded *config.Loaded
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Logger *log.Logger
		Stdout io.Writer
		Stderr io.Writer
	}

	rootFlags struct {
		verbose bool
		cfgFile string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(deps.Stderr, log.Options{Prefix: config.AppName})
	}

	return &App{
		Config: deps.Config,
		Logger: deps.Logger,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		schema: sync.OnceValues(fhr.LoadSchema),
	}
}

// cfg returns the configuration loaded for this invocation, or the defaults when
// the root command has not run (direct handler tests).
func (a *App) cfg() *config.Config {
	if a.loaded == nil || a.loaded.Config == nil {
		return config.DefaultConfig()
	}
	return a.loaded.Config
}

// loadConfig loads configuration for the invocation. An explicit --config file
// must load; a broken default file degrades to defaults with a warning.
func (a *App) loadConfig(ctx context.Context) error {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.cfgFile})
	if err == nil {
		a.loaded = loaded
		a.applyLogLevel()
		return nil
	}

	if a.flags.cfgFile != "" {
		return err
	}

	a.loaded = &config.Loaded{Config: config.DefaultConfig()}
	a.applyLogLevel()
	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose()))
	return nil
}

// loadConfigOrDefaults is loadConfig for commands that report load failures themselves.
func (a *App) loadConfigOrDefaults(ctx context.Context) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.cfgFile})
	if err != nil {
		loaded = &config.Loaded{Config: config.DefaultConfig()}
	}
	a.loaded = loaded
	a.applyLogLevel()
}

func (a *App) verbose() bool {
	return a.flags.verbose || a.cfg().UI.Verbose
}

func (a *App) applyLogLevel() {
	if a.verbose() {
		a.Logger.SetLevel(log.DebugLevel)
		return
	}
	a.Logger.SetLevel(a.cfg().Log.Level.Level())
}

// readInput reads a metadata file, enforcing the configured size limit.
func (a *App) readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.WrapWithContext(err, "read input", path)
	}
	// The resource below already names the file.
	if err := cueutil.CheckFileSize(data, int64(a.cfg().Limits.MaxFileSize), ""); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read input").
			WithResource(path).
			WithSuggestion("Raise limits.max_file_size in the configuration file").
			Wrap(err).
			BuildError()
	}
	return data, nil
}

// detectFormat maps a path to its carrier. Unknown extensions exit with ExitUnsupported.
func detectFormat(path string) (fhr.Format, error) {
	f, err := fhr.FormatFromPath(path)
	if err != nil {
		return "", unsupportedError(err, "detect metadata format", path)
	}
	return f, nil
}

func unsupportedError(err error, operation, resource string) error {
	return &ExitError{
		Code: ExitUnsupported,
		Err: issue.NewErrorContext().
			WithOperation(operation).
			WithResource(resource).
			WithSuggestion("Use a .yml, .yaml, .json, .fasta, .fa, .gfa, .html or .htm file").
			Wrap(err).
			BuildError(),
	}
}

// decodeHeader reads path and decodes it with the carrier its extension names.
func (a *App) decodeHeader(path string) (*fhr.Header, fhr.Format, error) {
	f, err := detectFormat(path)
	if err != nil {
		return nil, "", err
	}
	codec, err := fhr.CodecFor(f, fhr.WithLogger(a.Logger))
	if err != nil {
		return nil, "", unsupportedError(err, "detect metadata format", path)
	}

	data, err := a.readInput(path)
	if err != nil {
		return nil, "", err
	}

	a.Logger.Debug("decoding header", "path", path, "carrier", codec.Name())
	h, err := codec.Decode(data)
	if err != nil {
		return nil, "", issue.WrapWithContext(err, "decode metadata", path)
	}
	return h, f, nil
}

// validateHeader checks h against the schema and turns a violation into an
// ExitValidation error.
func (a *App) validateHeader(h *fhr.Header, resource string) error {
	res, err := a.checkHeader(h, resource)
	if err != nil {
		return err
	}
	return violationError(res, resource)
}

func (a *App) checkHeader(h *fhr.Header, resource string) (fhr.Result, error) {
	schema, err := a.schema()
	if err != nil {
		return fhr.Result{}, err
	}
	res, err := fhr.NewValidator(schema).Validate(h)
	if err != nil {
		return fhr.Result{}, issue.WrapWithContext(err, "validate header", resource)
	}
	return res, nil
}

func violationError(res fhr.Result, resource string) error {
	if res.Valid() {
		return nil
	}
	return &ExitError{
		Code: ExitValidation,
		Err:  issue.WrapWithContext(res.Violation, "validate header", resource),
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
