package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authform"
	"connectorauth/internal/authtype"
	"connectorauth/internal/form"
	"connectorauth/internal/headers"
)

var gatewayEdit = authctx.EntityContext{Family: authctx.FamilyGateway, Edit: true}

func newEditor(t *testing.T) *authform.Editor {
	t.Helper()
	e := authform.NewEditor(authform.Options{Reporter: form.NopReporter{}, Notifier: form.NopNotifier{}})
	e.Mount(gatewayEdit)
	return e
}

func render(t *testing.T, e *authform.Editor, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	opts.NoColor = true
	require.NoError(t, NewRenderer(&buf, e, opts).All(gatewayEdit))
	return buf.String()
}

func TestAll_NotMounted(t *testing.T) {
	e := authform.NewEditor(authform.Options{Reporter: form.NopReporter{}})
	err := NewRenderer(&bytes.Buffer{}, e, Options{}).All(gatewayEdit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway-edit")
}

func TestAll_BasicSchemeMasksPassword(t *testing.T) {
	e := newEditor(t)
	e.SelectAuthType(gatewayEdit, authtype.Basic)
	require.NoError(t, e.SetField(gatewayEdit, authctx.Username, "alice"))
	require.NoError(t, e.SetField(gatewayEdit, authctx.Password, "hunter2"))

	out := render(t, e, Options{})

	assert.Contains(t, out, "Context: gateway-edit")
	assert.Contains(t, out, "Auth:    basic")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, maskedPreview)
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, gatewayEdit.ID(authctx.Token))
	assert.Contains(t, out, "No headers configured")
}

func TestAll_ShowHiddenListsEveryField(t *testing.T) {
	e := newEditor(t)

	out := render(t, e, Options{ShowHidden: true})

	for _, base := range fieldOrder {
		assert.Contains(t, out, gatewayEdit.ID(base), base)
	}
}

func TestAll_StoredSecretPreview(t *testing.T) {
	e := newEditor(t)
	e.SelectAuthType(gatewayEdit, authtype.Bearer)
	require.NoError(t, e.SetStoredSecret(gatewayEdit, authctx.Token, nil))

	out := render(t, e, Options{})

	assert.Contains(t, out, maskedPreview+" stored")
	assert.NotContains(t, out, e.Placeholder())
}

func TestHeaders_StatusesAndTotal(t *testing.T) {
	e := newEditor(t)
	e.SelectAuthType(gatewayEdit, authtype.AuthHeaders)
	containerID := gatewayEdit.ID(authctx.HeadersContainer)
	rows := e.HeaderRows(containerID)
	require.Len(t, rows, 1)

	e.UpdateAuthHeader(containerID, rows[0].ID(), "X-A", "1")
	e.AddAuthHeader(containerID, headers.Entry{Key: "X-A", Value: "2"})
	e.AddAuthHeader(containerID, headers.Entry{Value: "orphan"})
	e.AddAuthHeader(containerID, headers.Entry{Key: "bad key", Value: "3"})
	e.AddAuthHeader(containerID, headers.Entry{})

	var buf bytes.Buffer
	NewRenderer(&buf, e, Options{NoColor: true}).Headers(gatewayEdit)
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, StatusDuplicate))
	assert.Contains(t, out, StatusMissingKey)
	assert.Contains(t, out, StatusInvalidKey)
	assert.Contains(t, out, StatusEmpty)
	assert.Contains(t, out, "Total: 2 serialized headers")
}

func TestHeaders_LimitMessage(t *testing.T) {
	e := authform.NewEditor(authform.Options{MaxHeaders: 1, Reporter: form.NopReporter{}, Notifier: form.NopNotifier{}})
	e.Mount(gatewayEdit)
	containerID := gatewayEdit.ID(authctx.HeadersContainer)
	e.AddAuthHeader(containerID, headers.Entry{Key: "X-A", Value: "1"})
	e.AddAuthHeader(containerID, headers.Entry{Key: "X-B", Value: "2"})

	var buf bytes.Buffer
	NewRenderer(&buf, e, Options{NoColor: true}).Headers(gatewayEdit)

	assert.Contains(t, buf.String(), "Maximum of 1 headers allowed per gateway")
}

func TestRowStatuses(t *testing.T) {
	e := newEditor(t)
	containerID := gatewayEdit.ID(authctx.HeadersContainer)
	ok := e.AddAuthHeader(containerID, headers.Entry{Key: " X-Trim ", Value: "v"})
	empty := e.AddAuthHeader(containerID, headers.Entry{})

	report, found := e.EvaluateHeaders(containerID)
	require.True(t, found)

	got := RowStatuses(e.HeaderRows(containerID), report)
	assert.Equal(t, map[string]string{ok: StatusOK, empty: StatusEmpty}, got)
}
