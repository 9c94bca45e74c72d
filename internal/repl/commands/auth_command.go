package commands

import (
	"context"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authtype"
	"connectorauth/internal/oauthgrant"
)

// AuthCommand shows or switches the authentication scheme
type AuthCommand struct {
	*BaseCommand
}

// NewAuthCommand creates a new auth command
func NewAuthCommand(session Session, output OutputLogger) *AuthCommand {
	return &AuthCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute prints the current scheme, or selects the given one
func (a *AuthCommand) Execute(ctx context.Context, args []string) error {
	entity := a.context()
	if len(args) == 0 {
		a.output.OutputLine("%s", a.editor().AuthType(entity))
		return nil
	}

	scheme, err := authtype.ParseAuthType(args[0])
	if err != nil {
		return err
	}
	a.editor().HandleAuthTypeChange(entity.ID(authctx.AuthTypeSelect), string(scheme))
	a.output.Success("Authentication type set to %s", scheme)
	return nil
}

// Usage returns the usage string
func (a *AuthCommand) Usage() string {
	return "auth [none|basic|bearer|authheaders|oauth|query_param]"
}

// Description returns the command description
func (a *AuthCommand) Description() string {
	return "Show or select the authentication type"
}

// Completions returns the known schemes
func (a *AuthCommand) Completions(input string) []string {
	var out []string
	for _, t := range authtype.All() {
		out = append(out, string(t))
	}
	return out
}

// Aliases returns command aliases
func (a *AuthCommand) Aliases() []string {
	return nil
}

// GrantCommand shows or switches the OAuth grant type
type GrantCommand struct {
	*BaseCommand
}

// NewGrantCommand creates a new grant command
func NewGrantCommand(session Session, output OutputLogger) *GrantCommand {
	return &GrantCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute prints the current grant, or selects the given one. Grants
// outside the known set are applied too; they hide every grant-specific
// group.
func (g *GrantCommand) Execute(ctx context.Context, args []string) error {
	entity := g.context()
	if len(args) == 0 {
		g.output.OutputLine("%s", g.editor().GrantType(entity))
		return nil
	}

	grant := oauthgrant.ParseGrantType(args[0])
	g.editor().HandleOAuthGrantTypeChange(entity.ID(authctx.GrantTypeSelect), string(grant))
	if !grant.Known() {
		g.output.Info("Unknown grant type %s, grant-specific fields hidden", grant)
		return nil
	}
	g.output.Success("Grant type set to %s", grant)
	return nil
}

// Usage returns the usage string
func (g *GrantCommand) Usage() string {
	return "grant [authorization_code|password|client_credentials]"
}

// Description returns the command description
func (g *GrantCommand) Description() string {
	return "Show or select the OAuth grant type"
}

// Completions returns the known grants
func (g *GrantCommand) Completions(input string) []string {
	var out []string
	for _, grant := range oauthgrant.All() {
		out = append(out, string(grant))
	}
	return out
}

// Aliases returns command aliases
func (g *GrantCommand) Aliases() []string {
	return nil
}
