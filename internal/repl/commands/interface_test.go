package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("exit", NewExitCommand(nil, nil))
	r.Register("help", NewHelpCommand(nil, nil, r))

	cmd, ok := r.Get("q")
	require.True(t, ok)
	assert.ErrorIs(t, cmd.Execute(context.Background(), nil), ErrExit)

	_, ok = r.Get("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"exit", "help"}, r.List())
	assert.Equal(t, []string{"?", "exit", "help", "q", "quit"}, r.AllCompletions())
}

func TestStripQuotes(t *testing.T) {
	assert.Equal(t, "a b", stripQuotes(`"a b"`))
	assert.Equal(t, "a b", stripQuotes(`'a b'`))
	assert.Equal(t, `"a`, stripQuotes(`"a`))
	assert.Equal(t, "", stripQuotes(`""`))
}

func TestFieldCompletions(t *testing.T) {
	all := fieldCompletions(false)
	assert.Contains(t, all, "auth-username")
	assert.Contains(t, all, "oauth-client-secret")
	assert.NotContains(t, all, "auth-headers-json")
	assert.NotContains(t, all, "auth-basic-fields")
	assert.NotContains(t, all, "oauth-username-field")

	assert.ElementsMatch(t, []string{"auth-password", "auth-token", "auth-query-param-value", "oauth-client-secret", "oauth-password"}, fieldCompletions(true))
}
