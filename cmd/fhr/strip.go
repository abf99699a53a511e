// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fair-bioheaders/fhr/internal/issue"
	"github.com/fair-bioheaders/fhr/pkg/gfa"
)

func newStripCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "strip <graph.gfa> <output.gfa>",
		Short: "Remove an embedded header from a GFA graph",
		Long: `Remove an embedded header from a GFA graph.

Every line starting with #~ is dropped; all other lines, including their
line endings, are copied unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.strip(args[0], args[1])
		},
	}
}

func (a *App) strip(graphPath, out string) error {
	if out == graphPath || sameFile(out, graphPath) {
		return issue.NewErrorContext().
			WithOperation("strip header").
			WithResource(out).
			WithSuggestion("Write the stripped graph to a new file").
			Wrap(errSameFile).
			BuildError()
	}

	graph, err := os.Open(graphPath)
	if err != nil {
		return issue.WrapWithContext(err, "read graph", graphPath)
	}
	defer func() { _ = graph.Close() }()

	a.Logger.Debug("stripping header", "graph", graphPath, "output", out)
	if err := writeFile(out, func(w io.Writer) error {
		return gfa.StripReader(w, graph)
	}); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "%s Wrote %s\n", SuccessStyle.Render("✓"), out)
	return nil
}
