package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRenderer(t *testing.T) {
	dir := t.TempDir()
	state := writeFile(t, dir, "state.yaml", headersState)

	var out bytes.Buffer
	opts := &watchOptions{noClear: true}
	opts.render.noColor = true
	handler := stateRenderer(&out, opts)

	require.NoError(t, handler(context.Background(), state))
	assert.Contains(t, out.String(), "gateway-edit")
	assert.Contains(t, out.String(), "X-API-Key")
	assert.NotContains(t, out.String(), clearScreen)
}

func TestStateRenderer_ReportsInvalidState(t *testing.T) {
	dir := t.TempDir()
	state := writeFile(t, dir, "state.yaml", "entity: printer\n")

	var out bytes.Buffer
	handler := stateRenderer(&out, &watchOptions{})

	require.Error(t, handler(context.Background(), state))
	assert.Contains(t, out.String(), state)
	assert.Contains(t, out.String(), "printer")
}
