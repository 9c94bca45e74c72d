package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"connectorauth/internal/watch"
	"connectorauth/pkg/logging"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

type watchOptions struct {
	render   renderOptions
	debounce time.Duration
	noClear  bool
}

func newWatchCmd() *cobra.Command {
	opts := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render a form state whenever it changes",
		Long: `Renders a form-state file like 'render' and renders it again every time
the file is saved. Invalid states are reported and watching continues.
Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			path, err := opts.render.source.path()
			if err != nil {
				return err
			}
			w := watch.New(path, opts.debounce, stateRenderer(cmd.OutOrStdout(), opts))
			return w.Run(ctx)
		},
	}
	opts.render.source.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.render.showHidden, "show-hidden", false, "Also list fields of hidden groups")
	cmd.Flags().BoolVar(&opts.render.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.render.noPayload, "no-payload", false, "Do not build the submission payload")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "Wait this long for further changes before rendering")
	cmd.Flags().BoolVar(&opts.noClear, "no-clear", false, "Do not clear the screen between renders")
	return cmd
}

// stateRenderer renders the state file at path into out on every call.
func stateRenderer(out io.Writer, opts *watchOptions) watch.Handler {
	return func(ctx context.Context, path string) error {
		source := stateSource{file: path}
		editor, entity, err := source.load()
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			return err
		}
		if !opts.noClear {
			fmt.Fprint(out, clearScreen)
		}
		fmt.Fprintf(out, "%s  (%s, %s)\n\n", path, describeContext(entity), time.Now().Format("15:04:05"))
		if err := writeRender(ctx, out, editor, entity, &opts.render); err != nil {
			fmt.Fprintf(out, "%v\n", err)
			return err
		}
		logging.Debug("Watch", "Rendered %s", path)
		return nil
	}
}
