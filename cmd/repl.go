package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"connectorauth/internal/config"
	"connectorauth/internal/repl"
)

type replOptions struct {
	entity  string
	edit    bool
	source  stateSource
	script  string
	noColor bool
}

func newREPLCmd() *cobra.Command {
	opts := &replOptions{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Edit a form interactively",
		Long: `Starts an interactive session on one form instance. The session can
switch the authentication type and OAuth grant, set fields, reveal and mask
secrets, edit header rows and print the header JSON and payload.

Examples:
  connectorauth repl --entity gateway --edit
  connectorauth repl -f gateway.yaml
  connectorauth repl --entity agent --script setup.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.entity, "entity", "gateway", "Entity family or context name, e.g. gateway, agent, base")
	cmd.Flags().BoolVar(&opts.edit, "edit", false, "Use the edit form of the entity")
	opts.source.addFlags(cmd)
	cmd.Flags().StringVar(&opts.script, "script", "", "Run commands from a file instead of interactively")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	return cmd
}

func runREPL(cmd *cobra.Command, opts *replOptions) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	editor, err := newEditor()
	if err != nil {
		return err
	}
	entity, err := editor.Resolver().Parse(opts.entity)
	if err != nil {
		return err
	}
	if opts.edit {
		entity.Edit = true
	}

	if opts.source.file != "" || opts.source.name != "" {
		editor, entity, err = opts.source.load()
		if err != nil {
			return err
		}
	}

	session := repl.NewREPL(repl.Options{
		Editor:  editor,
		Context: entity,
		States:  config.NewStateStorage(configPath),
		Logger:  repl.NewLoggerWithWriter(!opts.noColor, cmd.OutOrStdout(), cmd.ErrOrStderr()),
	})

	if opts.script != "" {
		return runScript(ctx, session, opts.script)
	}
	return session.Run(ctx)
}

func runScript(ctx context.Context, session *repl.REPL, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return session.RunScript(ctx, f)
}
