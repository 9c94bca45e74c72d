package oauthgrant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"connectorauth/internal/authctx"
	"connectorauth/internal/form"
)

type grantFields struct {
	authCode, usernameGroup, passwordGroup *form.Group
	username, password, sel                *form.Input
}

func mount(doc *form.Document, ctx authctx.EntityContext) grantFields {
	f := grantFields{
		authCode:      form.NewGroup(ctx.ID(authctx.OAuthAuthCodeGroup)),
		usernameGroup: form.NewGroup(ctx.ID(authctx.OAuthUsernameGroup)),
		passwordGroup: form.NewGroup(ctx.ID(authctx.OAuthPasswordGroup)),
		username:      form.NewInput(ctx.ID(authctx.OAuthUsername), form.TypeText),
		password:      form.NewInput(ctx.ID(authctx.OAuthPassword), form.TypePassword),
		sel:           form.NewInput(ctx.ID(authctx.GrantTypeSelect), form.TypeText),
	}
	for _, el := range []form.Element{f.authCode, f.usernameGroup, f.passwordGroup, f.username, f.password, f.sel} {
		doc.Add(el)
	}
	return f
}

func newController(doc *form.Document) *Controller {
	return NewController(doc, authctx.NewResolver(nil), form.NopReporter{})
}

func TestParseGrantType(t *testing.T) {
	tests := []struct {
		in    string
		want  GrantType
		known bool
	}{
		{"authorization_code", AuthorizationCode, true},
		{" Password ", Password, true},
		{"client_credentials", ClientCredentials, true},
		{"", DefaultGrantType, true},
		{"urn:ietf:params:oauth:grant-type:device_code", GrantType("urn:ietf:params:oauth:grant-type:device_code"), false},
	}
	for _, tt := range tests {
		got := ParseGrantType(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.known, got.Known(), tt.in)
	}
}

func TestSelect_Password(t *testing.T) {
	doc := form.NewDocument()
	f := mount(doc, authctx.Base)
	f.authCode.Show()

	newController(doc).Select(Password, authctx.Base)

	assert.False(t, f.usernameGroup.Hidden())
	assert.False(t, f.passwordGroup.Hidden())
	assert.True(t, f.authCode.Hidden())
	assert.True(t, f.username.Required())
	assert.True(t, f.password.Required())
	assert.Equal(t, "password", f.sel.Value())
}

func TestSelect_ClientCredentialsAfterPassword(t *testing.T) {
	doc := form.NewDocument()
	f := mount(doc, authctx.Base)
	ctrl := newController(doc)

	ctrl.Select(Password, authctx.Base)
	ctrl.Select(ClientCredentials, authctx.Base)

	assert.False(t, f.username.Required())
	assert.False(t, f.password.Required())
	assert.True(t, f.usernameGroup.Hidden())
	assert.True(t, f.passwordGroup.Hidden())
	assert.True(t, f.authCode.Hidden())
}

func TestSelect_AuthorizationCodeLeavesCredentialsUntouched(t *testing.T) {
	doc := form.NewDocument()
	f := mount(doc, authctx.Base)
	ctrl := newController(doc)

	ctrl.Select(Password, authctx.Base)
	ctrl.Select(AuthorizationCode, authctx.Base)

	assert.False(t, f.authCode.Hidden())
	assert.False(t, f.usernameGroup.Hidden())
	assert.True(t, f.password.Required())
}

func TestSelect_UnknownGrantHidesEverything(t *testing.T) {
	doc := form.NewDocument()
	f := mount(doc, authctx.Base)
	ctrl := newController(doc)

	ctrl.Select(Password, authctx.Base)
	ctrl.Select(GrantType("device_code"), authctx.Base)

	assert.True(t, f.usernameGroup.Hidden())
	assert.False(t, f.username.Required())
}

func TestSelectFromField_ResolvesContext(t *testing.T) {
	contexts := []authctx.EntityContext{
		authctx.Base,
		{Edit: true},
		{Family: authctx.FamilyGateway},
		{Family: authctx.FamilyGateway, Edit: true},
		{Family: authctx.FamilyAgent},
		{Family: authctx.FamilyAgent, Edit: true},
	}

	for _, ctx := range contexts {
		t.Run(ctx.String(), func(t *testing.T) {
			doc := form.NewDocument()
			all := make(map[authctx.EntityContext]grantFields)
			for _, other := range contexts {
				all[other] = mount(doc, other)
			}
			ctrl := newController(doc)

			ctrl.SelectFromField(ctx.ID(authctx.GrantTypeSelect), "password")

			for other, f := range all {
				assert.Equal(t, other == ctx, f.username.Required(), "context %s", other)
			}
			assert.Equal(t, Password, ctrl.Current(ctx))
		})
	}
}

func TestSelect_MissingFieldsIsNoop(t *testing.T) {
	ctrl := newController(form.NewDocument())
	assert.NotPanics(t, func() {
		ctrl.Select(Password, authctx.Base)
		ctrl.SelectFromField("nope", "client_credentials")
	})
	assert.Equal(t, DefaultGrantType, ctrl.Current(authctx.Base))
}
