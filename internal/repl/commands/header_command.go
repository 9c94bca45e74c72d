package commands

import (
	"context"
	"fmt"
	"strings"

	"connectorauth/internal/headers"
	"connectorauth/internal/render"
)

var headerActions = []string{"add", "rm", "set", "load", "list", "clear"}

// maskedFlag marks header values loaded by "header load" as stored secrets.
const maskedFlag = "--masked"

// HeaderCommand edits the header rows of the current context
type HeaderCommand struct {
	*BaseCommand
}

// NewHeaderCommand creates a new header command
func NewHeaderCommand(session Session, output OutputLogger) *HeaderCommand {
	return &HeaderCommand{BaseCommand: NewBaseCommand(session, output)}
}

// Execute dispatches the header sub-action
func (h *HeaderCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return h.list()
	}
	action := strings.ToLower(args[0])
	if err := h.validateTarget(action, headerActions); err != nil {
		return err
	}
	rest := args[1:]

	switch action {
	case "add":
		return h.add(rest)
	case "rm":
		return h.remove(rest)
	case "set":
		return h.set(rest)
	case "load":
		return h.load(rest)
	case "clear":
		h.editor().LoadAuthHeaders(h.containerID(), nil, headers.LoadOptions{})
		h.output.Success("Headers cleared")
		return nil
	default:
		return h.list()
	}
}

func (h *HeaderCommand) add(args []string) error {
	if len(args) == 0 {
		if id := h.editor().AddAuthHeader(h.containerID(), headers.Entry{}); id == "" {
			return fmt.Errorf("no header container in this context")
		}
		h.output.Success("Added empty header row")
		return nil
	}
	entry := headers.Entry{Key: args[0], Value: stripQuotes(h.joinArgsFrom(args, 1))}
	if id := h.editor().AddAuthHeader(h.containerID(), entry); id == "" {
		return fmt.Errorf("no header container in this context")
	}
	h.output.Success("Added header %s", entry.Key)
	return nil
}

func (h *HeaderCommand) remove(args []string) error {
	if _, err := h.parseArgs(args, 1, "header rm <row>"); err != nil {
		return err
	}
	rowID, err := h.rowIndex(args[0])
	if err != nil {
		return err
	}
	h.editor().RemoveAuthHeader(rowID, h.containerID())
	h.output.Success("Removed header row %s", args[0])
	return nil
}

func (h *HeaderCommand) set(args []string) error {
	if _, err := h.parseArgs(args, 2, "header set <row> <key> [value]"); err != nil {
		return err
	}
	rowID, err := h.rowIndex(args[0])
	if err != nil {
		return err
	}
	h.editor().UpdateAuthHeader(h.containerID(), rowID, args[1], stripQuotes(h.joinArgsFrom(args, 2)))
	h.output.Success("Updated header row %s", args[0])
	return nil
}

func (h *HeaderCommand) load(args []string) error {
	var opts headers.LoadOptions
	var parts []string
	for _, a := range args {
		if a == maskedFlag {
			opts.MaskValues = true
			continue
		}
		parts = append(parts, a)
	}
	raw := stripQuotes(strings.Join(parts, " "))
	if err := h.editor().LoadAuthHeadersJSON(h.containerID(), raw, opts); err != nil {
		return err
	}
	h.output.Success("Loaded %d header rows", len(h.editor().HeaderRows(h.containerID())))
	return nil
}

func (h *HeaderCommand) list() error {
	h.render(render.Options{}, func(r *render.Renderer) {
		r.Headers(h.context())
	})
	return nil
}

// Usage returns the usage string
func (h *HeaderCommand) Usage() string {
	return "header [add|rm|set|load|list|clear] ..."
}

// Description returns the command description
func (h *HeaderCommand) Description() string {
	return "Edit the custom header rows"
}

// Completions returns the sub-actions
func (h *HeaderCommand) Completions(input string) []string {
	return headerActions
}

// Aliases returns command aliases
func (h *HeaderCommand) Aliases() []string {
	return []string{"headers"}
}
