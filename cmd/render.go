package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authform"
	"connectorauth/internal/render"
)

type renderOptions struct {
	source     stateSource
	showHidden bool
	noColor    bool
	noPayload  bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form state",
		Long: `Applies a form-state file and prints which field groups are visible,
the values of the visible fields, the header rows with their validation
status, the serialized header JSON and the submission payload.

Examples:
  connectorauth render -f gateway.yaml
  connectorauth render --state staging --show-hidden`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, ctx, err := opts.source.load()
			if err != nil {
				return err
			}
			return writeRender(cmd.Context(), cmd.OutOrStdout(), editor, ctx, opts)
		},
	}
	opts.source.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.showHidden, "show-hidden", false, "Also list fields of hidden groups")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.noPayload, "no-payload", false, "Do not build the submission payload")
	return cmd
}

// writeRender prints everything the render command shows for ctx.
func writeRender(ctx context.Context, w io.Writer, editor *authform.Editor, entity authctx.EntityContext, opts *renderOptions) error {
	r := render.NewRenderer(w, editor, render.Options{NoColor: opts.noColor, ShowHidden: opts.showHidden})
	if err := r.All(entity); err != nil {
		return err
	}

	fmt.Fprintln(w)
	jsonValue := ""
	if field := editor.Field(entity, authctx.HeadersJSON); field != nil {
		jsonValue = field.Value()
	}
	fmt.Fprintf(w, "Header JSON: %s\n", orNone(jsonValue))

	if opts.noPayload {
		return nil
	}
	payload, err := editor.Payload(ctx, entity)
	if err != nil {
		return fmt.Errorf("failed to build payload: %w", err)
	}
	fmt.Fprintf(w, "Payload:\n%s", gjson.GetBytes(payload, "@pretty").Raw)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
