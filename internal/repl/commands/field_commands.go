package commands

import (
	"context"
	"fmt"
	"strconv"

	"connectorauth/internal/authctx"
	"connectorauth/internal/form"
)

// SetCommand types a value into a field of the current context
type SetCommand struct {
	*BaseCommand
}

// NewSetCommand creates a new set command
func NewSetCommand(session Session, output OutputLogger) *SetCommand {
	return &SetCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute sets the field value; an empty value clears it
func (s *SetCommand) Execute(ctx context.Context, args []string) error {
	if _, err := s.parseArgs(args, 1, s.Usage()); err != nil {
		return err
	}
	if err := s.editor().SetField(s.context(), args[0], stripQuotes(s.joinArgsFrom(args, 1))); err != nil {
		return err
	}
	s.output.Success("%s updated", args[0])
	return nil
}

// Usage returns the usage string
func (s *SetCommand) Usage() string {
	return "set <field> [value]"
}

// Description returns the command description
func (s *SetCommand) Description() string {
	return "Set a field value"
}

// Completions returns the settable fields
func (s *SetCommand) Completions(input string) []string {
	return fieldCompletions(false)
}

// Aliases returns command aliases
func (s *SetCommand) Aliases() []string {
	return nil
}

// StoredCommand marks a secret field as holding a stored secret
type StoredCommand struct {
	*BaseCommand
}

// NewStoredCommand creates a new stored command
func NewStoredCommand(session Session, output OutputLogger) *StoredCommand {
	return &StoredCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute marks the field. Without a plaintext the stored value is unknown
// and cannot be revealed.
func (s *StoredCommand) Execute(ctx context.Context, args []string) error {
	if _, err := s.parseArgs(args, 1, s.Usage()); err != nil {
		return err
	}
	var real *string
	if len(args) > 1 {
		v := stripQuotes(s.joinArgsFrom(args, 1))
		real = &v
	}
	if err := s.editor().SetStoredSecret(s.context(), args[0], real); err != nil {
		return err
	}
	s.output.Success("%s holds a stored secret", args[0])
	return nil
}

// Usage returns the usage string
func (s *StoredCommand) Usage() string {
	return "stored <secret-field> [plaintext]"
}

// Description returns the command description
func (s *StoredCommand) Description() string {
	return "Display a secret field as previously stored"
}

// Completions returns the secret fields
func (s *StoredCommand) Completions(input string) []string {
	return fieldCompletions(true)
}

// Aliases returns command aliases
func (s *StoredCommand) Aliases() []string {
	return nil
}

// ToggleCommand reveals or masks a secret field or header value
type ToggleCommand struct {
	*BaseCommand
}

// NewToggleCommand creates a new toggle command
func NewToggleCommand(session Session, output OutputLogger) *ToggleCommand {
	return &ToggleCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute toggles the field named by a secret field identifier or a header
// row number
func (t *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if _, err := t.parseArgs(args, 1, t.Usage()); err != nil {
		return err
	}

	fieldID, err := t.target(args[0])
	if err != nil {
		return err
	}
	button := form.ButtonByID(t.editor().Document(), authctx.ToggleID(fieldID))
	if button == nil {
		return fmt.Errorf("%s has no reveal toggle", args[0])
	}
	t.editor().ToggleSecret(fieldID)

	switch {
	case button.Disabled():
		t.output.Error("%s", button.Title())
	case button.Pressed():
		t.output.Success("%s revealed", args[0])
	default:
		t.output.Success("%s masked", args[0])
	}
	return nil
}

func (t *ToggleCommand) target(arg string) (string, error) {
	if _, err := strconv.Atoi(arg); err == nil {
		rowID, err := t.rowIndex(arg)
		if err != nil {
			return "", err
		}
		for _, row := range t.editor().HeaderRows(t.containerID()) {
			if row.ID() == rowID {
				return row.Value.ID(), nil
			}
		}
	}
	if t.editor().Field(t.context(), arg) == nil {
		return "", fmt.Errorf("field %s not found", arg)
	}
	return t.context().ID(arg), nil
}

// Usage returns the usage string
func (t *ToggleCommand) Usage() string {
	return "toggle <secret-field|header-row>"
}

// Description returns the command description
func (t *ToggleCommand) Description() string {
	return "Reveal or mask a secret value"
}

// Completions returns the secret fields
func (t *ToggleCommand) Completions(input string) []string {
	return fieldCompletions(true)
}

// Aliases returns command aliases
func (t *ToggleCommand) Aliases() []string {
	return []string{"reveal"}
}
