package oauthgrant

import (
	"connectorauth/internal/authctx"
	"connectorauth/internal/form"
)

// Controller shows and hides the authorization-code, username and password
// groups of a form instance according to its grant type.
type Controller struct {
	lookup   form.Lookup
	resolver *authctx.Resolver
	reporter form.Reporter
}

// NewController creates a controller. A nil reporter logs under "OAuthGrant".
func NewController(lookup form.Lookup, resolver *authctx.Resolver, reporter form.Reporter) *Controller {
	if reporter == nil {
		reporter = form.LogReporter{Subsystem: "OAuthGrant"}
	}
	if resolver == nil {
		resolver = authctx.NewResolver(nil)
	}
	return &Controller{lookup: lookup, resolver: resolver, reporter: reporter}
}

// fields are the grant-dependent elements of one context. Any of them may
// be nil.
type fields struct {
	authCode      *form.Group
	usernameGroup *form.Group
	passwordGroup *form.Group
	username      *form.Input
	password      *form.Input
}

func (c *Controller) fields(ctx authctx.EntityContext) fields {
	return fields{
		authCode:      form.GroupByID(c.lookup, ctx.ID(authctx.OAuthAuthCodeGroup)),
		usernameGroup: form.GroupByID(c.lookup, ctx.ID(authctx.OAuthUsernameGroup)),
		passwordGroup: form.GroupByID(c.lookup, ctx.ID(authctx.OAuthPasswordGroup)),
		username:      form.InputByID(c.lookup, ctx.ID(authctx.OAuthUsername)),
		password:      form.InputByID(c.lookup, ctx.ID(authctx.OAuthPassword)),
	}
}

// Select applies grant to the form instance identified by ctx.
func (c *Controller) Select(grant GrantType, ctx authctx.EntityContext) {
	f := c.fields(ctx)

	if sel := form.InputByID(c.lookup, ctx.ID(authctx.GrantTypeSelect)); sel != nil {
		sel.SetValue(string(grant))
	}

	switch grant {
	case AuthorizationCode:
		setVisible(f.authCode, true)
	case Password:
		setVisible(f.authCode, false)
		setVisible(f.usernameGroup, true)
		setVisible(f.passwordGroup, true)
		setRequired(f.username, true)
		setRequired(f.password, true)
	case ClientCredentials:
		c.hideAll(f)
	default:
		c.reporter.Debugf("Grant type %q has no dedicated fields", grant)
		c.hideAll(f)
	}

	c.reporter.Debugf("Grant type %s selected for %s", grant, ctx)
}

// SelectFromField applies value to the form instance the trigger field
// belongs to.
func (c *Controller) SelectFromField(triggerID, value string) {
	c.Select(ParseGrantType(value), c.resolver.Resolve(triggerID))
}

// Current returns the grant selected in ctx, or DefaultGrantType.
func (c *Controller) Current(ctx authctx.EntityContext) GrantType {
	if sel := form.InputByID(c.lookup, ctx.ID(authctx.GrantTypeSelect)); sel != nil {
		return ParseGrantType(sel.Value())
	}
	return DefaultGrantType
}

func (c *Controller) hideAll(f fields) {
	setVisible(f.authCode, false)
	setVisible(f.usernameGroup, false)
	setVisible(f.passwordGroup, false)
	setRequired(f.username, false)
	setRequired(f.password, false)
}

func setVisible(g *form.Group, visible bool) {
	if g != nil {
		g.SetVisible(visible)
	}
}

func setRequired(in *form.Input, required bool) {
	if in != nil {
		in.SetRequired(required)
	}
}
