package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"connectorauth/internal/authctx"
	"connectorauth/internal/render"
)

// ShowCommand renders the current form instance
type ShowCommand struct {
	*BaseCommand
}

// NewShowCommand creates a new show command
func NewShowCommand(session Session, output OutputLogger) *ShowCommand {
	return &ShowCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute renders groups, fields and headers. "all" includes hidden fields.
func (s *ShowCommand) Execute(ctx context.Context, args []string) error {
	opts := render.Options{}
	if len(args) > 0 {
		if err := s.validateTarget(args[0], []string{"all"}); err != nil {
			return err
		}
		opts.ShowHidden = true
	}
	var err error
	s.render(opts, func(r *render.Renderer) {
		err = r.All(s.context())
	})
	return err
}

// Usage returns the usage string
func (s *ShowCommand) Usage() string {
	return "show [all]"
}

// Description returns the command description
func (s *ShowCommand) Description() string {
	return "Show visible groups, fields and headers"
}

// Completions returns possible completions
func (s *ShowCommand) Completions(input string) []string {
	return []string{"all"}
}

// Aliases returns command aliases
func (s *ShowCommand) Aliases() []string {
	return []string{"ls"}
}

// JSONCommand prints the hidden header JSON field
type JSONCommand struct {
	*BaseCommand
}

// NewJSONCommand creates a new json command
func NewJSONCommand(session Session, output OutputLogger) *JSONCommand {
	return &JSONCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute re-serializes the header container and prints its JSON field
func (j *JSONCommand) Execute(ctx context.Context, args []string) error {
	containerID := j.containerID()
	j.editor().UpdateAuthHeadersJSON(containerID)

	field := j.editor().Field(j.context(), authctx.HeadersJSON)
	if field == nil {
		return fmt.Errorf("no header JSON field in this context")
	}
	if field.Value() == "" {
		j.output.OutputLine("(empty)")
		return nil
	}
	j.output.OutputLine("%s", field.Value())
	return nil
}

// Usage returns the usage string
func (j *JSONCommand) Usage() string {
	return "json"
}

// Description returns the command description
func (j *JSONCommand) Description() string {
	return "Print the serialized header JSON"
}

// Completions returns possible completions
func (j *JSONCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (j *JSONCommand) Aliases() []string {
	return nil
}

// PayloadCommand prints the submission payload
type PayloadCommand struct {
	*BaseCommand
}

// NewPayloadCommand creates a new payload command
func NewPayloadCommand(session Session, output OutputLogger) *PayloadCommand {
	return &PayloadCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute builds and pretty-prints the payload
func (p *PayloadCommand) Execute(ctx context.Context, args []string) error {
	out, err := p.editor().Payload(ctx, p.context())
	if err != nil {
		return err
	}
	p.output.Output("%s", gjson.GetBytes(out, "@pretty").Raw)
	return nil
}

// Usage returns the usage string
func (p *PayloadCommand) Usage() string {
	return "payload"
}

// Description returns the command description
func (p *PayloadCommand) Description() string {
	return "Print the submission payload"
}

// Completions returns possible completions
func (p *PayloadCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (p *PayloadCommand) Aliases() []string {
	return []string{"submit"}
}

// AuthorizeCommand previews the OAuth authorization URL
type AuthorizeCommand struct {
	*BaseCommand
}

// NewAuthorizeCommand creates a new authorize command
func NewAuthorizeCommand(session Session, output OutputLogger) *AuthorizeCommand {
	return &AuthorizeCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute prints the authorization URL. A random state is used when none is
// given.
func (a *AuthorizeCommand) Execute(ctx context.Context, args []string) error {
	state := a.joinArgsFrom(args, 0)
	if state == "" {
		state = uuid.NewString()
	}
	u, err := a.editor().AuthorizeURL(a.context(), state)
	if err != nil {
		return err
	}
	a.output.OutputLine("%s", u)
	return nil
}

// Usage returns the usage string
func (a *AuthorizeCommand) Usage() string {
	return "authorize [state]"
}

// Description returns the command description
func (a *AuthorizeCommand) Description() string {
	return "Preview the OAuth authorization URL"
}

// Completions returns possible completions
func (a *AuthorizeCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (a *AuthorizeCommand) Aliases() []string {
	return nil
}

// TokenCommand fetches a token with the client_credentials grant
type TokenCommand struct {
	*BaseCommand
}

// NewTokenCommand creates a new token command
func NewTokenCommand(session Session, output OutputLogger) *TokenCommand {
	return &TokenCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute requests a token from the configured token URL. The access token
// itself is never printed.
func (c *TokenCommand) Execute(ctx context.Context, args []string) error {
	token, err := c.editor().FetchToken(ctx, c.context())
	if err != nil {
		return err
	}
	c.output.Success("Token received (%d chars)", len(token.AccessToken))
	c.output.OutputLine("Type:    %s", token.Type())
	if token.Expiry.IsZero() {
		c.output.OutputLine("Expires: never")
	} else {
		c.output.OutputLine("Expires: %s", token.Expiry.Format(time.RFC3339))
	}
	if scope, ok := token.Extra("scope").(string); ok && scope != "" {
		c.output.OutputLine("Scope:   %s", scope)
	}
	return nil
}

// Usage returns the usage string
func (c *TokenCommand) Usage() string {
	return "token"
}

// Description returns the command description
func (c *TokenCommand) Description() string {
	return "Fetch a token with the client_credentials grant"
}

// Completions returns possible completions
func (c *TokenCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (c *TokenCommand) Aliases() []string {
	return nil
}
