package repl

import (
	"github.com/chzyer/readline"
)

// createCompleter builds tab completion from the registered commands. The
// candidates of a command are taken once, so the completer is rebuilt after
// every command to pick up new state names and contexts.
func (r *REPL) createCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range r.registry.AllCompletions() {
		cmd, ok := r.registry.Get(name)
		if !ok {
			continue
		}
		var children []readline.PrefixCompleterInterface
		for _, c := range cmd.Completions("") {
			children = append(children, readline.PcItem(c))
		}
		items = append(items, readline.PcItem(name, children...))
	}
	return readline.NewPrefixCompleter(items...)
}

// filterInput filters input runes for readline
func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
