package commands

import (
	"context"
	"fmt"
	"strings"

	"connectorauth/internal/authform"
)

var stateActions = []string{"save", "open", "list", "rm"}

// StateCommand saves and restores named form states
type StateCommand struct {
	*BaseCommand
}

// NewStateCommand creates a new state command
func NewStateCommand(session Session, output OutputLogger) *StateCommand {
	return &StateCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute dispatches the state sub-action
func (s *StateCommand) Execute(ctx context.Context, args []string) error {
	states := s.session.States()
	if states == nil {
		return fmt.Errorf("state storage is not configured")
	}
	if len(args) == 0 {
		args = []string{"list"}
	}
	action := strings.ToLower(args[0])
	if err := s.validateTarget(action, stateActions); err != nil {
		return err
	}

	if action == "list" {
		names, err := states.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			s.output.OutputLine("No saved states")
			return nil
		}
		for _, name := range names {
			s.output.OutputLine("  %s", name)
		}
		return nil
	}

	if _, err := s.parseArgs(args, 2, "state "+action+" <name>"); err != nil {
		return err
	}
	name := args[1]

	switch action {
	case "save":
		data, err := s.editor().CaptureState(s.context()).Marshal()
		if err != nil {
			return err
		}
		if err := states.Save(name, data); err != nil {
			return err
		}
		s.output.Success("Saved state %s", name)
	case "open":
		data, err := states.Load(name)
		if err != nil {
			return err
		}
		st, err := authform.ParseState(data)
		if err != nil {
			return fmt.Errorf("state %s: %w", name, err)
		}
		entity, err := s.editor().ApplyState(st)
		if err != nil {
			return fmt.Errorf("state %s: %w", name, err)
		}
		s.session.SetContext(entity)
		s.output.Success("Opened state %s (%s)", name, s.editor().Resolver().Describe(entity))
	case "rm":
		if err := states.Delete(name); err != nil {
			return err
		}
		s.output.Success("Deleted state %s", name)
	}
	return nil
}

// Usage returns the usage string
func (s *StateCommand) Usage() string {
	return "state [save|open|list|rm] [name]"
}

// Description returns the command description
func (s *StateCommand) Description() string {
	return "Save, open and list named form states"
}

// Completions returns the sub-actions followed by saved state names
func (s *StateCommand) Completions(input string) []string {
	out := append([]string{}, stateActions...)
	if states := s.session.States(); states != nil {
		if names, err := states.List(); err == nil {
			out = append(out, names...)
		}
	}
	return out
}

// Aliases returns command aliases
func (s *StateCommand) Aliases() []string {
	return []string{"states"}
}
