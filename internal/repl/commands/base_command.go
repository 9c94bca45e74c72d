package commands

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authform"
	"connectorauth/internal/render"
)

// BaseCommand provides the dependencies and argument helpers shared by all
// commands.
type BaseCommand struct {
	session Session      // Editor and current context
	output  OutputLogger // User-facing output
}

// NewBaseCommand creates a new base command.
func NewBaseCommand(session Session, output OutputLogger) *BaseCommand {
	return &BaseCommand{
		session: session,
		output:  output,
	}
}

// editor returns the session's editor.
func (b *BaseCommand) editor() *authform.Editor {
	return b.session.Editor()
}

// context returns the current entity context.
func (b *BaseCommand) context() authctx.EntityContext {
	return b.session.Context()
}

// containerID returns the header container of the current context.
func (b *BaseCommand) containerID() string {
	return b.context().ID(authctx.HeadersContainer)
}

// render runs fn against a renderer of the session's editor and writes the
// result as command output.
func (b *BaseCommand) render(opts render.Options, fn func(r *render.Renderer)) {
	var buf bytes.Buffer
	opts.NoColor = !b.output.Colored()
	fn(render.NewRenderer(&buf, b.editor(), opts))
	b.output.Output("%s", buf.String())
}

// parseArgs validates args against a minimum count.
func (b *BaseCommand) parseArgs(args []string, minArgs int, usage string) ([]string, error) {
	if len(args) < minArgs {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	return args, nil
}

// joinArgsFrom joins arguments starting from index into a single string.
// Returns "" if index is out of bounds.
func (b *BaseCommand) joinArgsFrom(args []string, index int) string {
	if index >= len(args) {
		return ""
	}
	return strings.Join(args[index:], " ")
}

// validateTarget checks that target is one of validTargets, ignoring case.
func (b *BaseCommand) validateTarget(target string, validTargets []string) error {
	for _, valid := range validTargets {
		if strings.EqualFold(target, valid) {
			return nil
		}
	}
	return fmt.Errorf("unknown target: %s. Valid targets: %s", target, strings.Join(validTargets, ", "))
}

// rowIndex parses a 1-based header row number of the current context and
// returns the row's identifier.
func (b *BaseCommand) rowIndex(arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return "", fmt.Errorf("invalid row number %q", arg)
	}
	rows := b.editor().HeaderRows(b.containerID())
	if n < 1 || n > len(rows) {
		return "", fmt.Errorf("row %d out of range (1-%d)", n, len(rows))
	}
	return rows[n-1].ID(), nil
}

// fieldCompletions lists the base identifiers accepted by field commands.
func fieldCompletions(secretsOnly bool) []string {
	if secretsOnly {
		return authctx.SecretIDs()
	}
	var out []string
	for _, base := range authctx.BaseIDs() {
		switch base {
		case authctx.AuthTypeSelect, authctx.GrantTypeSelect, authctx.HeadersJSON, authctx.HeadersContainer:
			continue
		}
		if strings.HasSuffix(base, "-fields") || strings.HasSuffix(base, "-field") {
			continue
		}
		out = append(out, base)
	}
	return out
}

// stripQuotes removes surrounding single or double quotes from a string.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
