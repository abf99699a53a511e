// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fair-bioheaders/fhr/internal/issue"
	"github.com/fair-bioheaders/fhr/pkg/fhr"
	"github.com/fair-bioheaders/fhr/pkg/gfa"
)

// combineRequest captures the inputs of one combine invocation.
type combineRequest struct {
	Metadata string
	Graph    string
	// Output is the combined file; empty derives it from Graph and the configured suffix.
	Output   string
	Validate bool
}

func newCombineCommand(app *App) *cobra.Command {
	var (
		output   string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "combine <metadata> <graph.gfa>",
		Short: "Embed a metadata header into a GFA graph",
		Long: `Embed a metadata header into a GFA graph.

The metadata file may be any carrier (.yml, .yaml, .json, .fasta, .fa, .gfa,
.html, .htm). The header is written as #~ comment lines followed by the graph
body. By default the output replaces the graph extension with the configured
suffix (.fht.gfa).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.combine(combineRequest{
				Metadata: args[0],
				Graph:    args[1],
				Output:   output,
				Validate: validate || app.cfg().Combine.Validate,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <graph><suffix>)")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the header before embedding it")

	return cmd
}

func (a *App) combine(req combineRequest) error {
	if f, err := fhr.FormatFromPath(req.Graph); err != nil || f != fhr.FormatGFA {
		return unsupportedError(&fhr.UnsupportedFormatError{Path: req.Graph}, "read graph", req.Graph)
	}

	h, _, err := a.decodeHeader(req.Metadata)
	if err != nil {
		return err
	}
	if req.Validate {
		if err := a.validateHeader(h, req.Metadata); err != nil {
			return err
		}
	}

	out := req.Output
	if out == "" {
		out = combinedOutputPath(req.Graph, a.cfg().Combine.Suffix)
	}
	if out == req.Graph || sameFile(out, req.Graph) {
		return issue.NewErrorContext().
			WithOperation("write combined graph").
			WithResource(out).
			WithSuggestion("Choose a different output with -o").
			Wrap(errSameFile).
			BuildError()
	}

	graph, err := os.Open(req.Graph)
	if err != nil {
		return issue.WrapWithContext(err, "read graph", req.Graph)
	}
	defer func() { _ = graph.Close() }()

	a.Logger.Debug("combining", "metadata", req.Metadata, "graph", req.Graph, "output", out)
	if err := writeFile(out, func(w io.Writer) error {
		return gfa.WriteCombined(w, h, graph)
	}); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "%s Wrote %s\n", SuccessStyle.Render("✓"), out)
	return nil
}
