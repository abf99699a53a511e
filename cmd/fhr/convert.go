// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fair-bioheaders/fhr/internal/issue"
	"github.com/fair-bioheaders/fhr/pkg/fhr"
)

// convertRequest captures the inputs of one convert invocation.
type convertRequest struct {
	Input string
	To    string
	// Output is the destination file; empty writes to stdout.
	Output   string
	Validate bool
}

func newConvertCommand(app *App) *cobra.Command {
	var (
		to       string
		output   string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input> --to <format>",
		Short: "Convert a metadata header between carriers",
		Long: `Convert a metadata header between carriers.

The input carrier is chosen by file extension. --to accepts yaml, json, fasta,
gfa or html (or an extension such as yml or fa). Output goes to stdout unless
-o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.convert(convertRequest{
				Input:    args[0],
				To:       to,
				Output:   output,
				Validate: validate || app.cfg().Convert.Validate,
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target format (yaml, json, fasta, gfa, html)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the header before writing it")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (a *App) convert(req convertRequest) error {
	target, err := fhr.ParseFormat(req.To)
	if err != nil {
		return unsupportedError(err, "select output format", req.To)
	}
	codec, err := fhr.CodecFor(target, fhr.WithLogger(a.Logger))
	if err != nil {
		return unsupportedError(err, "select output format", req.To)
	}

	h, from, err := a.decodeHeader(req.Input)
	if err != nil {
		return err
	}
	if req.Validate {
		if err := a.validateHeader(h, req.Input); err != nil {
			return err
		}
	}

	data, err := codec.Encode(h)
	if err != nil {
		return issue.WrapWithContext(err, "encode "+target.String(), req.Input)
	}
	a.Logger.Debug("converted header", "from", from, "to", target, "bytes", len(data))

	if req.Output == "" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := writeFile(req.Output, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "%s Wrote %s\n", SuccessStyle.Render("✓"), req.Output)
	return nil
}
