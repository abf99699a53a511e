// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"

	"github.com/fair-bioheaders/fhr/internal/config"
	"github.com/fair-bioheaders/fhr/internal/issue"
	"github.com/fair-bioheaders/fhr/pkg/fhr"
)

func newValidateCommand(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <input>",
		Short: "Validate a metadata header against the FHR schema",
		Long: `Validate a metadata header against the FHR schema.

The header is decoded with the carrier its extension names and checked
against the embedded schema. With --strict, .json and .yml documents are
validated as written, so unknown fields and empty values are reported too.

Exits with status 2 when the header violates the schema.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.validate(args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "validate raw .json/.yml documents, including unknown fields")

	return cmd
}

func (a *App) validate(path string, strict bool) error {
	f, err := detectFormat(path)
	if err != nil {
		return err
	}

	var res fhr.Result
	if strict && (f == fhr.FormatJSON || f == fhr.FormatYAML) {
		res, err = a.validateDocument(path, f)
	} else {
		if strict {
			a.Logger.Debug("strict mode only applies to documents, validating decoded header", "carrier", f)
		}
		var h *fhr.Header
		if h, _, err = a.decodeHeader(path); err == nil {
			res, err = a.checkHeader(h, path)
		}
	}
	if err != nil {
		return err
	}

	a.printReport(validationReport(path, res))

	verr := violationError(res, path)
	if verr != nil && a.verbose() {
		var ae *issue.ActionableError
		if errors.As(verr, &ae) {
			if guide, gerr := ae.Guide(glamourStyle(a.cfg().UI.ColorScheme)); gerr == nil {
				_, _ = fmt.Fprint(a.stderr, guide)
			}
		}
	}
	return verr
}

func (a *App) validateDocument(path string, f fhr.Format) (fhr.Result, error) {
	data, err := a.readInput(path)
	if err != nil {
		return fhr.Result{}, err
	}
	schema, err := a.schema()
	if err != nil {
		return fhr.Result{}, err
	}
	res, err := fhr.NewValidator(schema).ValidateDocument(data, f, path)
	if err != nil {
		return fhr.Result{}, issue.WrapWithContext(err, "validate document", path)
	}
	return res, nil
}

// printReport renders markdown on stdout, falling back to the raw text.
func (a *App) printReport(md string) {
	out, err := glamour.Render(md, glamourStyle(a.cfg().UI.ColorScheme))
	if err != nil {
		a.Logger.Debug("report rendering failed", "error", err)
		out = md
	}
	_, _ = fmt.Fprint(a.stdout, out)
}

// glamourStyle maps the configured color scheme to a glamour standard style.
func glamourStyle(cs config.ColorScheme) string {
	switch cs {
	case config.ColorSchemeDark:
		return styles.DarkStyle
	case config.ColorSchemeLight:
		return styles.LightStyle
	default:
		return styles.AutoStyle
	}
}

// validationReport builds the markdown summary of one validation.
func validationReport(path string, res fhr.Result) string {
	var sb strings.Builder

	sb.WriteString("# Validation report\n\n")
	fmt.Fprintf(&sb, "**File:** `%s`\n\n", path)

	if res.Valid() {
		sb.WriteString("**Result:** valid\n")
		return sb.String()
	}

	sb.WriteString("**Result:** invalid\n\n")
	sb.WriteString("| Field | Constraint | Message |\n")
	sb.WriteString("|---|---|---|\n")
	v := res.Violation
	fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", v.Field, v.Constraint, markdownCell(v.Message))
	return sb.String()
}

// markdownCell keeps a value on one table row.
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	if s == "" {
		return "-"
	}
	return s
}
