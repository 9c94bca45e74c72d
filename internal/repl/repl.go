package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authform"
	"connectorauth/internal/config"
	"connectorauth/internal/repl/commands"
)

// promptPrefixUnicode is a mathematical bold "a" used in the REPL prompt.
const promptPrefixUnicode = "𝗮"

// promptPrefixASCII is the fallback prefix for terminals without unicode support.
const promptPrefixASCII = "a"

// promptChevronUnicode is the guillemet separator used in the prompt.
const promptChevronUnicode = "»"

// promptChevronASCII is the fallback chevron for terminals without unicode support.
const promptChevronASCII = ">"

// StateHeadersInvalid is shown in the prompt while the header rows of the
// current context cannot be serialized as they are.
const StateHeadersInvalid = "[HEADERS INVALID]"

// maxContextNameLength is the maximum length for context names in the prompt.
const maxContextNameLength = 28

// commandExecutionTimeout bounds a single REPL command.
const commandExecutionTimeout = 30 * time.Second

// historyFileName is created in the OS temp directory.
const historyFileName = ".connectorauth_history"

// Options configures a REPL.
type Options struct {
	Editor *authform.Editor
	// Context is mounted and selected at start.
	Context authctx.EntityContext
	// States enables the state command when set.
	States *config.StateStorage
	Logger *Logger
}

// REPL is an interactive session editing one authentication form.
type REPL struct {
	logger     *Logger
	session    *session
	registry   *commands.Registry
	rl         *readline.Instance
	useUnicode bool
	mu         sync.RWMutex
}

// NewREPL creates a REPL over opts.Editor and registers all commands.
func NewREPL(opts Options) *REPL {
	if opts.Logger == nil {
		opts.Logger = NewLogger(false)
	}
	r := &REPL{
		logger:     opts.Logger,
		registry:   commands.NewRegistry(),
		useUnicode: detectUnicodeSupport(),
	}
	r.session = &session{
		editor:   opts.Editor,
		states:   opts.States,
		onSwitch: func(authctx.EntityContext) { r.updatePrompt() },
	}
	r.session.SetContext(opts.Context)
	r.registerCommands()
	return r
}

// Context returns the entity context commands currently operate on.
func (r *REPL) Context() authctx.EntityContext {
	return r.session.Context()
}

func (r *REPL) registerCommands() {
	s, out := r.session, r.logger

	r.registry.Register("help", commands.NewHelpCommand(s, out, r.registry))
	r.registry.Register("auth", commands.NewAuthCommand(s, out))
	r.registry.Register("grant", commands.NewGrantCommand(s, out))
	r.registry.Register("header", commands.NewHeaderCommand(s, out))
	r.registry.Register("set", commands.NewSetCommand(s, out))
	r.registry.Register("stored", commands.NewStoredCommand(s, out))
	r.registry.Register("toggle", commands.NewToggleCommand(s, out))
	r.registry.Register("show", commands.NewShowCommand(s, out))
	r.registry.Register("json", commands.NewJSONCommand(s, out))
	r.registry.Register("payload", commands.NewPayloadCommand(s, out))
	r.registry.Register("authorize", commands.NewAuthorizeCommand(s, out))
	r.registry.Register("token", commands.NewTokenCommand(s, out))
	r.registry.Register("use", commands.NewUseCommand(s, out))
	r.registry.Register("state", commands.NewStateCommand(s, out))
	r.registry.Register("exit", commands.NewExitCommand(s, out))
}

// detectUnicodeSupport checks if the terminal likely supports unicode characters.
func detectUnicodeSupport() bool {
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}
	for _, v := range []string{os.Getenv("LANG"), os.Getenv("LC_ALL")} {
		lower := strings.ToLower(v)
		if strings.Contains(lower, "utf-8") || strings.Contains(lower, "utf8") {
			return true
		}
	}
	// vt100 has no unicode glyphs
	return !strings.Contains(strings.ToLower(term), "vt100")
}

// buildPrompt creates the prompt, e.g. "𝗮 gateway-edit »" or
// "a gateway-edit [HEADERS INVALID] >".
func (r *REPL) buildPrompt() string {
	r.mu.RLock()
	useUnicode := r.useUnicode
	r.mu.RUnlock()

	prefix := promptPrefixASCII
	chevron := promptChevronASCII
	if useUnicode {
		prefix = promptPrefixUnicode
		chevron = promptChevronUnicode
	}

	ctx := r.session.Context()
	parts := []string{prefix, truncateContextName(r.session.editor.Resolver().Describe(ctx))}
	if r.headersInvalid(ctx) {
		parts = append(parts, StateHeadersInvalid)
	}
	parts = append(parts, chevron)

	return strings.Join(parts, " ") + " "
}

func (r *REPL) headersInvalid(ctx authctx.EntityContext) bool {
	report, ok := r.session.editor.EvaluateHeaders(ctx.ID(authctx.HeadersContainer))
	return ok && (report.TooMany || len(report.MissingKey) > 0)
}

// truncateContextName shortens long context names keeping both ends.
// Example: "production-us-east-1-cluster-edit" becomes "production-us...ster-edit".
func truncateContextName(name string) string {
	if len(name) <= maxContextNameLength {
		return name
	}

	ellipsis := "..."
	available := maxContextNameLength - len(ellipsis)
	startLen := (available * 3) / 5
	endLen := available - startLen

	return name[:startLen] + ellipsis + name[len(name)-endLen:]
}

func (r *REPL) updatePrompt() {
	if r.rl != nil {
		r.rl.SetPrompt(r.buildPrompt())
	}
}

// executeCommand parses and executes one input line. Empty input is ignored.
func (r *REPL) executeCommand(ctx context.Context, input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	commandName := strings.ToLower(parts[0])
	args := parts[1:]

	if commandName == "?" {
		commandName = "help"
	}

	command, exists := r.registry.Get(commandName)
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", parts[0])
	}

	commandCtx, commandCancel := context.WithTimeout(ctx, commandExecutionTimeout)
	defer commandCancel()

	return command.Execute(commandCtx, args)
}

// RunScript executes the commands read from in, one per line. Blank lines
// and lines starting with "#" are skipped. It stops at the first failing
// command or at exit.
func (r *REPL) RunScript(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if err := r.executeCommand(ctx, input); err != nil {
			if errors.Is(err, commands.ErrExit) {
				return nil
			}
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

// Run starts the interactive loop. It returns nil on exit, Ctrl+D or
// context cancellation.
func (r *REPL) Run(ctx context.Context) error {
	rlConfig := &readline.Config{
		Prompt:          r.buildPrompt(),
		HistoryFile:     filepath.Join(os.TempDir(), historyFileName),
		AutoComplete:    r.createCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	r.logger.Info("Editing %s. Type 'help' for available commands. Use TAB for completion.",
		r.session.editor.Resolver().Describe(r.session.Context()))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("REPL shutting down...")
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			r.logger.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if err := r.executeCommand(ctx, input); err != nil {
			if errors.Is(err, commands.ErrExit) {
				r.logger.Info("Goodbye!")
				return nil
			}
			r.logger.Error("Error: %v", err)
		}

		r.rl.Config.AutoComplete = r.createCompleter()
		r.updatePrompt()
	}
}
