package commands

import (
	"context"

	"connectorauth/internal/authctx"
)

// UseCommand switches the entity context commands operate on
type UseCommand struct {
	*BaseCommand
}

// NewUseCommand creates a new use command
func NewUseCommand(session Session, output OutputLogger) *UseCommand {
	return &UseCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute prints the current context, or switches to the named one
func (u *UseCommand) Execute(ctx context.Context, args []string) error {
	resolver := u.editor().Resolver()
	if len(args) == 0 {
		u.output.OutputLine("%s", resolver.Describe(u.context()))
		return nil
	}

	entity, err := resolver.Parse(args[0])
	if err != nil {
		return err
	}
	u.session.SetContext(entity)
	u.output.Success("Switched to %s", resolver.Describe(entity))
	return nil
}

// Usage returns the usage string
func (u *UseCommand) Usage() string {
	return "use [context]"
}

// Description returns the command description
func (u *UseCommand) Description() string {
	return "Show or switch the entity context"
}

// Completions returns every context name
func (u *UseCommand) Completions(input string) []string {
	resolver := u.editor().Resolver()
	out := []string{"base", "edit"}
	for _, family := range resolver.Families() {
		for _, ctx := range contextsOf(family) {
			out = append(out, resolver.Describe(ctx))
		}
	}
	return out
}

// Aliases returns command aliases
func (u *UseCommand) Aliases() []string {
	return []string{"context"}
}

func contextsOf(family string) []authctx.EntityContext {
	return []authctx.EntityContext{
		{Family: family},
		{Family: family, Edit: true},
	}
}
