// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/fair-bioheaders/fhr/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the fhr command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fhr",
		Short: "Read, write, convert and validate FAIR bioinformatics headers",
		Long: TitleStyle.Render("fhr") + SubtitleStyle.Render(" - FAIR bioinformatics header tooling") + `

fhr moves a genome assembly's metadata header between carriers: YAML and
JSON documents, comment lines in FASTA (;~) and GFA (#~) files, and HTML
microdata. Headers can be validated against the FHR schema at any step.

` + SubtitleStyle.Render("Examples:") + `
  fhr combine header.yml assembly.gfa     Embed a header into a graph
  fhr strip assembly.fht.gfa plain.gfa    Remove an embedded header
  fhr convert header.yml --to html        Render a header as microdata
  fhr validate header.json --strict       Check a header against the schema
  fhr config show                         Show current configuration`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.loadConfig(cmd.Context())
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/fhr/config.cue)")

	rootCmd.AddCommand(newCombineCommand(app))
	rootCmd.AddCommand(newStripCommand(app))
	rootCmd.AddCommand(newConvertCommand(app))
	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(errorHandler(app)),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// errorHandler prints actionable errors with their suggestions and leaves
// everything else to fang's default handler.
func errorHandler(app *App) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		var ae *issue.ActionableError
		if !errors.As(err, &ae) {
			fang.DefaultErrorHandler(w, styles, err)
			return
		}
		_, _ = fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(app.verbose()))
	}
}
