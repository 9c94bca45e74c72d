package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authform"
	"connectorauth/internal/config"
)

// stateSource selects a form-state file either by path or by saved name.
type stateSource struct {
	file string
	name string
}

func (s *stateSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "Form-state YAML file")
	cmd.Flags().StringVar(&s.name, "state", "", "Name of a saved form state")
	cmd.MarkFlagsMutuallyExclusive("file", "state")
}

// path resolves the file the state is read from.
func (s *stateSource) path() (string, error) {
	switch {
	case s.file != "":
		return s.file, nil
	case s.name != "":
		return config.NewStateStorage(configPath).Path(s.name)
	default:
		return "", errors.New("a form state is required: use --file or --state")
	}
}

// load applies the state to a new editor.
func (s *stateSource) load() (*authform.Editor, authctx.EntityContext, error) {
	path, err := s.path()
	if err != nil {
		return nil, authctx.Base, err
	}
	editor, err := newEditor()
	if err != nil {
		return nil, authctx.Base, err
	}
	ctx, err := editor.LoadStateFile(path)
	if err != nil {
		return nil, authctx.Base, fmt.Errorf("failed to load form state: %w", err)
	}
	return editor, ctx, nil
}

// describeContext names ctx with the configured families.
func describeContext(ctx authctx.EntityContext) string {
	return appConfig.Resolver().Describe(ctx)
}
