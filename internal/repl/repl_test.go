package repl

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authform"
	"connectorauth/internal/authtype"
	"connectorauth/internal/config"
	"connectorauth/internal/form"
	"connectorauth/internal/headers"
	"connectorauth/internal/secret"
)

var gatewayEdit = authctx.EntityContext{Family: authctx.FamilyGateway, Edit: true}

type harness struct {
	repl   *REPL
	out    *bytes.Buffer
	status *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	out, status := &bytes.Buffer{}, &bytes.Buffer{}
	editor := authform.NewEditor(authform.Options{
		Resolver: authctx.NewResolver(authctx.DefaultFamilies()),
		Reporter: form.NopReporter{},
		Notifier: form.NopNotifier{},
	})
	r := NewREPL(Options{
		Editor:  editor,
		Context: gatewayEdit,
		States:  config.NewStateStorage(t.TempDir()),
		Logger:  NewLoggerWithWriter(false, out, status),
	})
	return &harness{repl: r, out: out, status: status}
}

func (h *harness) run(t *testing.T, script string) error {
	t.Helper()
	return h.repl.RunScript(context.Background(), strings.NewReader(script))
}

func TestNewREPL_MountsInitialContext(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, gatewayEdit, h.repl.Context())
	assert.True(t, h.repl.session.editor.IsMounted(gatewayEdit))
	assert.NotEmpty(t, h.repl.registry.List())
}

func TestHelp(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "help\n? header\n"))

	assert.Contains(t, h.out.String(), "Available commands:")
	assert.Contains(t, h.out.String(), "Command: header")
	assert.Contains(t, h.out.String(), "Aliases: [headers]")
}

func TestScript_HeadersSerialize(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, `
# example session
auth authheaders
header add X-A 1
header add X-A 2
json
`)
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), `[{"key":"X-A","value":"1"},{"key":"X-A","value":"2"}]`)
	assert.Equal(t, authtype.AuthHeaders, h.repl.session.editor.AuthType(gatewayEdit))
}

func TestScript_HeaderRemoveAndSet(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "header add X-A 1\nheader add X-B 2\nheader rm 1\nheader set 1 X-C three words\njson\n"))

	assert.Contains(t, h.out.String(), `[{"key":"X-C","value":"three words"}]`)
}

func TestScript_HeaderLoadMasked(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, `header load [{"key":"X-Key","value":"abc"}] --masked`+"\n"))

	rows := h.repl.session.editor.HeaderRows(gatewayEdit.ID(authctx.HeadersContainer))
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Value.IsStoredSecret())
	assert.Equal(t, form.TypePassword, rows[0].Value.Type())
}

func TestScript_StopsAtFirstError(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "auth basic\nfrobnicate\nauth bearer\n")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "unknown command: frobnicate")
	assert.Equal(t, authtype.Basic, h.repl.session.editor.AuthType(gatewayEdit))
}

func TestScript_ExitStops(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "auth basic\nquit\nauth bearer\n"))

	assert.Equal(t, authtype.Basic, h.repl.session.editor.AuthType(gatewayEdit))
}

func TestScript_UnknownAuthTypeRejected(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "auth kerberos\n")

	require.Error(t, err)
	assert.Equal(t, authtype.None, h.repl.session.editor.AuthType(gatewayEdit))
}

func TestScript_UseSwitchesContext(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "use agent-edit\nauth bearer\nuse\n"))

	agentEdit := authctx.EntityContext{Family: authctx.FamilyAgent, Edit: true}
	assert.Equal(t, agentEdit, h.repl.Context())
	assert.Equal(t, authtype.Bearer, h.repl.session.editor.AuthType(agentEdit))
	assert.Equal(t, authtype.None, h.repl.session.editor.AuthType(gatewayEdit))
	assert.Contains(t, h.out.String(), "agent-edit")
	assert.Contains(t, h.repl.buildPrompt(), "agent-edit")
}

func TestScript_ToggleStoredSecret(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "auth bearer\nstored auth-token\ntoggle auth-token\n"))
	assert.Contains(t, h.status.String(), secret.RefusedTitle)

	h.status.Reset()
	require.NoError(t, h.run(t, "stored auth-token s3cr3t\ntoggle auth-token\n"))
	assert.Contains(t, h.status.String(), "auth-token revealed")
	assert.Equal(t, "s3cr3t", h.repl.session.editor.Field(gatewayEdit, authctx.Token).Value())
}

func TestScript_ToggleRequiresSecretField(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "toggle auth-username\n")

	require.Error(t, err)
	assert.Equal(t, form.TypeText, h.repl.session.editor.Field(gatewayEdit, authctx.Username).Type())
}

func TestScript_Payload(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "auth basic\nset auth-username admin\nset auth-password pw\npayload\n"))

	out := h.out.String()
	assert.Equal(t, "basic", gjson.Get(out, "auth_type").String())
	assert.Equal(t, "admin", gjson.Get(out, "auth_username").String())
	assert.Equal(t, "pw", gjson.Get(out, "auth_password").String())
}

func TestScript_Authorize(t *testing.T) {
	h := newHarness(t)

	script := "auth oauth\nset oauth-client-id cid\nset oauth-authorization-url https://idp.example/authorize\nauthorize xyz\n"
	require.NoError(t, h.run(t, script))

	assert.Contains(t, h.out.String(), "https://idp.example/authorize?")
	assert.Contains(t, h.out.String(), "state=xyz")
}

func TestScript_Token(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-secret","token_type":"bearer","expires_in":60}`))
	}))
	defer srv.Close()
	h := newHarness(t)

	script := "auth oauth\ngrant client_credentials\nset oauth-client-id cid\nset oauth-client-secret pw\nset oauth-token-url " + srv.URL + "\ntoken\n"
	require.NoError(t, h.run(t, script))

	assert.Contains(t, h.status.String(), "Token received (10 chars)")
	assert.Contains(t, h.out.String(), "Type:    Bearer")
	assert.NotContains(t, h.out.String(), "tok-secret")
}

func TestScript_StateSaveAndOpen(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "auth authheaders\nheader add X-A 1\nstate save demo\nstate list\n"))
	assert.Contains(t, h.out.String(), "demo")

	require.NoError(t, h.run(t, "use gateway\nstate open demo\n"))
	assert.Equal(t, gatewayEdit, h.repl.Context())

	err := h.run(t, "state open missing\n")
	require.ErrorIs(t, err, config.ErrStateNotFound)
}

func TestShowRendersTables(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "auth basic\nset auth-username alice\nshow\n"))

	assert.Contains(t, h.out.String(), "alice")
	assert.Contains(t, h.out.String(), gatewayEdit.ID(authctx.BasicGroup))
}

func TestPromptFlagsInvalidHeaders(t *testing.T) {
	h := newHarness(t)
	assert.NotContains(t, h.repl.buildPrompt(), StateHeadersInvalid)

	h.repl.session.editor.AddAuthHeader(gatewayEdit.ID(authctx.HeadersContainer), headers.Entry{Value: "orphan"})

	assert.Contains(t, h.repl.buildPrompt(), StateHeadersInvalid)
}

func TestTruncateContextName(t *testing.T) {
	assert.Equal(t, "gateway-edit", truncateContextName("gateway-edit"))

	long := truncateContextName("production-us-east-1-cluster-gateway-edit")
	assert.Len(t, long, maxContextNameLength)
	assert.Contains(t, long, "...")
	assert.True(t, strings.HasPrefix(long, "production"))
}

func TestCreateCompleter(t *testing.T) {
	h := newHarness(t)

	completer := h.repl.createCompleter()

	require.NotNil(t, completer)
	names := make([]string, 0, len(completer.GetChildren()))
	for _, child := range completer.GetChildren() {
		names = append(names, strings.TrimSpace(string(child.GetName())))
	}
	assert.Contains(t, names, "header")
	assert.Contains(t, names, "quit")
}
