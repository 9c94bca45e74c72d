package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"connectorauth/internal/authctx"
	"connectorauth/internal/headers"
	"connectorauth/internal/render"
)

// HeadersInvalidError reports header rows that block serialization.
type HeadersInvalidError struct {
	ContainerID string
	Problems    []string
}

func (e *HeadersInvalidError) Error() string {
	return fmt.Sprintf("headers of %s are invalid: %s", e.ContainerID, strings.Join(e.Problems, "; "))
}

// headersProblems lists what blocks serialization of a report. Malformed
// keys are excluded from the JSON without blocking it.
func headersProblems(report headers.Report) []string {
	if report.TooMany {
		return []string{report.LimitMessage()}
	}
	if n := len(report.MissingKey); n > 0 {
		return []string{fmt.Sprintf("%d row(s) with a value but no key", n)}
	}
	return nil
}

func newHeadersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headers",
		Short: "Validate and serialize custom header lists",
	}
	cmd.AddCommand(newHeadersValidateCmd())
	cmd.AddCommand(newHeadersSerializeCmd())
	return cmd
}

func newHeadersValidateCmd() *cobra.Command {
	var source stateSource
	var noColor bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report the header rows of a form state",
		Long: `Prints every header row of the form state with its status. The exit
code is 3 when rows exceed the limit or carry a value without a key.
Duplicate and malformed keys are reported without failing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, ctx, err := source.load()
			if err != nil {
				return err
			}
			containerID := ctx.ID(authctx.HeadersContainer)
			report, ok := editor.EvaluateHeaders(containerID)
			if !ok {
				return fmt.Errorf("header container %s not found", containerID)
			}

			out := cmd.OutOrStdout()
			render.NewRenderer(out, editor, render.Options{NoColor: noColor}).Headers(ctx)
			if len(report.Duplicates) > 0 {
				fmt.Fprintf(out, "Duplicate keys: %s\n", strings.Join(report.Duplicates, ", "))
			}
			if len(report.InvalidKey) > 0 {
				fmt.Fprintf(out, "Malformed keys excluded: %d\n", len(report.InvalidKey))
			}

			if problems := headersProblems(report); len(problems) > 0 {
				return &HeadersInvalidError{ContainerID: containerID, Problems: problems}
			}
			fmt.Fprintln(out, "Headers are valid")
			return nil
		},
	}
	source.addFlags(cmd)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func newHeadersSerializeCmd() *cobra.Command {
	var source stateSource
	cmd := &cobra.Command{
		Use:   "serialize",
		Short: "Print the header JSON of a form state",
		Long: `Prints the compact JSON array the form submits for the header rows of
the form state. Nothing is printed when there are no headers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, ctx, err := source.load()
			if err != nil {
				return err
			}
			containerID := ctx.ID(authctx.HeadersContainer)
			report, ok := editor.EvaluateHeaders(containerID)
			if !ok {
				return fmt.Errorf("header container %s not found", containerID)
			}
			if problems := headersProblems(report); len(problems) > 0 {
				return &HeadersInvalidError{ContainerID: containerID, Problems: problems}
			}

			editor.UpdateAuthHeadersJSON(containerID)
			if value := editor.Field(ctx, authctx.HeadersJSON).Value(); value != "" {
				fmt.Fprintln(cmd.OutOrStdout(), value)
			}
			return nil
		},
	}
	source.addFlags(cmd)
	return cmd
}
