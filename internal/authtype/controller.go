package authtype

import (
	"sort"
	"strings"

	"connectorauth/internal/authctx"
	"connectorauth/internal/form"
	"connectorauth/internal/headers"
	"connectorauth/internal/oauthgrant"
)

// FieldGroups are the five scheme groups of one form instance. Missing
// groups are nil.
type FieldGroups struct {
	Context authctx.EntityContext

	Basic      *form.Group
	Bearer     *form.Group
	Headers    *form.Group
	OAuth      *form.Group
	QueryParam *form.Group
}

func (g FieldGroups) byType() map[AuthType]*form.Group {
	return map[AuthType]*form.Group{
		Basic:       g.Basic,
		Bearer:      g.Bearer,
		AuthHeaders: g.Headers,
		OAuth:       g.OAuth,
		QueryParam:  g.QueryParam,
	}
}

// Missing lists the schemes whose group was not found.
func (g FieldGroups) Missing() []string {
	var missing []string
	for t, group := range g.byType() {
		if group == nil {
			missing = append(missing, string(t))
		}
	}
	sort.Strings(missing)
	return missing
}

// HeaderRows is the part of the header store the controller seeds rows into.
type HeaderRows interface {
	RowCount(containerID string) int
	Add(containerID string, e headers.Entry) string
}

// Options configures a Controller.
type Options struct {
	Reporter form.Reporter
	// Headers seeds an empty row when the header scheme is entered.
	Headers HeaderRows
	// Grants re-applies the grant type when the OAuth scheme is entered.
	Grants *oauthgrant.Controller
}

// Controller switches the visible scheme group of form instances.
type Controller struct {
	lookup   form.Lookup
	resolver *authctx.Resolver
	reporter form.Reporter
	headers  HeaderRows
	grants   *oauthgrant.Controller
}

// NewController creates a controller.
func NewController(lookup form.Lookup, resolver *authctx.Resolver, opts Options) *Controller {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = form.LogReporter{Subsystem: "AuthType"}
	}
	if resolver == nil {
		resolver = authctx.NewResolver(nil)
	}
	return &Controller{
		lookup:   lookup,
		resolver: resolver,
		reporter: reporter,
		headers:  opts.Headers,
		grants:   opts.Grants,
	}
}

// Groups resolves the scheme groups of ctx.
func (c *Controller) Groups(ctx authctx.EntityContext) FieldGroups {
	return FieldGroups{
		Context:    ctx,
		Basic:      form.GroupByID(c.lookup, ctx.ID(authctx.BasicGroup)),
		Bearer:     form.GroupByID(c.lookup, ctx.ID(authctx.BearerGroup)),
		Headers:    form.GroupByID(c.lookup, ctx.ID(authctx.HeadersGroup)),
		OAuth:      form.GroupByID(c.lookup, ctx.ID(authctx.OAuthGroup)),
		QueryParam: form.GroupByID(c.lookup, ctx.ID(authctx.QueryParamGroup)),
	}
}

// Select shows the group of t and hides every other group. Missing groups
// are reported and skipped.
func (c *Controller) Select(t AuthType, groups FieldGroups) {
	ctx := groups.Context
	if missing := groups.Missing(); len(missing) > 0 {
		c.reporter.Warnf("Auth field elements not found for %s: %s", ctx, strings.Join(missing, ", "))
	}

	for scheme, group := range groups.byType() {
		if group != nil {
			group.SetVisible(scheme == t)
		}
	}

	if sel := form.InputByID(c.lookup, ctx.ID(authctx.AuthTypeSelect)); sel != nil {
		sel.SetValue(string(t))
	}

	switch t {
	case AuthHeaders:
		c.seedHeaders(ctx)
	case OAuth:
		if c.grants != nil {
			c.grants.Select(c.grants.Current(ctx), ctx)
		}
	case None, Basic, Bearer, QueryParam:
	}

	c.reporter.Debugf("Auth type %s selected for %s", t, ctx)
}

// SelectFromField applies the scheme named by value to the form instance the
// trigger field belongs to. Unknown names select None.
func (c *Controller) SelectFromField(triggerID, value string) {
	t, err := ParseAuthType(value)
	if err != nil {
		c.reporter.Warnf("%v, treating as %s", err, None)
	}
	c.Select(t, c.Groups(c.resolver.Resolve(triggerID)))
}

// Current returns the scheme selected in ctx.
func (c *Controller) Current(ctx authctx.EntityContext) AuthType {
	sel := form.InputByID(c.lookup, ctx.ID(authctx.AuthTypeSelect))
	if sel == nil {
		return None
	}
	t, err := ParseAuthType(sel.Value())
	if err != nil {
		return None
	}
	return t
}

func (c *Controller) seedHeaders(ctx authctx.EntityContext) {
	containerID := ctx.ID(authctx.HeadersContainer)
	if c.headers == nil || form.ContainerByID(c.lookup, containerID) == nil {
		return
	}
	if c.headers.RowCount(containerID) == 0 {
		c.headers.Add(containerID, headers.Entry{})
	}
}
