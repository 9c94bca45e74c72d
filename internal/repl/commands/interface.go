// Package commands provides the commands of the authentication form REPL.
//
// Every command implements Command and operates on a Session: the editor,
// the entity context currently selected and the named state storage.
// Commands parse their own arguments and offer their own completions.
package commands

import (
	"context"
	"errors"
	"sort"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authform"
	"connectorauth/internal/config"
)

// ErrExit is returned by the exit command to end the session.
var ErrExit = errors.New("exit")

// Command represents a REPL command that can be executed interactively.
type Command interface {
	// Execute runs the command with the given arguments
	Execute(ctx context.Context, args []string) error

	// Usage returns the usage string for the command
	Usage() string

	// Description returns a brief description of what the command does
	Description() string

	// Completions returns possible completions for the command
	// The input parameter is the current partial input for context
	Completions(input string) []string

	// Aliases returns alternative names for this command
	Aliases() []string
}

// OutputLogger defines the interface for structured command output.
// This separates user-facing output from system logging.
type OutputLogger interface {
	// User-facing output, no timestamps
	Output(format string, args ...interface{})
	OutputLine(format string, args ...interface{})

	// Status messages
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
	Success(format string, args ...interface{})

	// Colored reports whether output may carry ANSI styling.
	Colored() bool
}

// Session is the state shared by all commands of one REPL.
type Session interface {
	Editor() *authform.Editor
	// Context is the form instance commands operate on.
	Context() authctx.EntityContext
	// SetContext mounts ctx if needed and makes it current.
	SetContext(ctx authctx.EntityContext)
	// States is nil when no state storage is configured.
	States() *config.StateStorage
}

// Registry manages available commands for the REPL.
type Registry struct {
	commands map[string]Command
	aliases  map[string]string // alias -> primary command name
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(name string, cmd Command) {
	r.commands[name] = cmd

	for _, alias := range cmd.Aliases() {
		r.aliases[alias] = name
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) (Command, bool) {
	if cmd, exists := r.commands[name]; exists {
		return cmd, true
	}

	if primary, exists := r.aliases[name]; exists {
		if cmd, exists := r.commands[primary]; exists {
			return cmd, true
		}
	}

	return nil, false
}

// List returns all registered command names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllCompletions returns all command names and aliases in sorted order.
func (r *Registry) AllCompletions() []string {
	completions := r.List()
	for alias := range r.aliases {
		completions = append(completions, alias)
	}
	sort.Strings(completions)
	return completions
}
