package authform

import (
	"fmt"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authtype"
	"connectorauth/internal/config"
	"connectorauth/internal/form"
	"connectorauth/internal/headers"
	"connectorauth/internal/oauthgrant"
	"connectorauth/internal/secret"
)

// Options configures an Editor.
type Options struct {
	// Placeholder is the masking placeholder of stored secrets.
	Placeholder string
	// MaxHeaders is the per-container header limit.
	MaxHeaders int
	// Naming maps header containers to their JSON fields.
	Naming authctx.NamingStrategy
	// Resolver derives entity contexts from identifiers.
	Resolver *authctx.Resolver

	Reporter form.Reporter
	Notifier form.Notifier
}

// OptionsFromConfig builds editor options from a loaded configuration.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	naming, err := cfg.NamingStrategy()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Placeholder: cfg.MaskedAuthValue,
		MaxHeaders:  cfg.MaxHeaders,
		Naming:      naming,
		Resolver:    cfg.Resolver(),
	}, nil
}

// Editor is the composition root of the authentication form.
type Editor struct {
	doc         *form.Document
	resolver    *authctx.Resolver
	placeholder string
	reporter    form.Reporter
	notifier    form.Notifier

	store      *headers.Store
	serializer *headers.Serializer
	secrets    *secret.Controller
	grants     *oauthgrant.Controller
	authTypes  *authtype.Controller

	mounted []authctx.EntityContext
}

// NewEditor creates an editor over an empty document.
func NewEditor(opts Options) *Editor {
	if opts.Placeholder == "" {
		opts.Placeholder = config.DefaultMaskedAuthValue
	}
	if opts.Resolver == nil {
		opts.Resolver = authctx.NewResolver(nil)
	}
	if opts.Reporter == nil {
		opts.Reporter = form.LogReporter{Subsystem: "Editor"}
	}
	if opts.Notifier == nil {
		opts.Notifier = form.LogNotifier{}
	}

	doc := form.NewDocument()
	e := &Editor{
		doc:         doc,
		resolver:    opts.Resolver,
		placeholder: opts.Placeholder,
		reporter:    opts.Reporter,
		notifier:    opts.Notifier,
	}

	e.store = headers.NewStore(doc, headers.Options{
		Placeholder: opts.Placeholder,
		Naming:      opts.Naming,
		Reporter:    opts.Reporter,
	})
	e.serializer = headers.NewSerializer(e.store, headers.SerializerOptions{
		MaxHeaders: opts.MaxHeaders,
		Reporter:   opts.Reporter,
		Notifier:   opts.Notifier,
	})
	e.store.OnChange(e.serializer.Recompute)

	e.secrets = secret.NewController(doc, secret.Options{
		Placeholder:    opts.Placeholder,
		Reporter:       opts.Reporter,
		OnHeaderToggle: e.serializer.Recompute,
	})
	e.grants = oauthgrant.NewController(doc, opts.Resolver, opts.Reporter)
	e.authTypes = authtype.NewController(doc, opts.Resolver, authtype.Options{
		Reporter: opts.Reporter,
		Headers:  e.store,
		Grants:   e.grants,
	})
	return e
}

// Document returns the element registry of the editor.
func (e *Editor) Document() *form.Document { return e.doc }

// Resolver returns the entity context resolver.
func (e *Editor) Resolver() *authctx.Resolver { return e.resolver }

// Placeholder returns the masking placeholder.
func (e *Editor) Placeholder() string { return e.placeholder }

// Mounted returns the mounted contexts in mount order.
func (e *Editor) Mounted() []authctx.EntityContext {
	out := make([]authctx.EntityContext, len(e.mounted))
	copy(out, e.mounted)
	return out
}

// IsMounted reports whether ctx has been mounted.
func (e *Editor) IsMounted(ctx authctx.EntityContext) bool {
	for _, m := range e.mounted {
		if m == ctx {
			return true
		}
	}
	return false
}

// inputTypes lists the display mode of every input of a form instance.
var inputTypes = map[string]form.InputType{
	authctx.AuthTypeSelect:    form.TypeText,
	authctx.Username:          form.TypeText,
	authctx.Password:          form.TypePassword,
	authctx.Token:             form.TypePassword,
	authctx.QueryParamKey:     form.TypeText,
	authctx.QueryParamValue:   form.TypePassword,
	authctx.HeadersJSON:       form.TypeHidden,
	authctx.GrantTypeSelect:   form.TypeText,
	authctx.OAuthClientID:     form.TypeText,
	authctx.OAuthClientSecret: form.TypePassword,
	authctx.OAuthTokenURL:     form.TypeText,
	authctx.OAuthAuthorizeURL: form.TypeText,
	authctx.OAuthRedirectURI:  form.TypeText,
	authctx.OAuthScopes:       form.TypeText,
	authctx.OAuthUsername:     form.TypeText,
	authctx.OAuthPassword:     form.TypePassword,
}

var groupIDs = []string{
	authctx.BasicGroup, authctx.BearerGroup, authctx.HeadersGroup,
	authctx.OAuthGroup, authctx.QueryParamGroup,
	authctx.OAuthAuthCodeGroup, authctx.OAuthUsernameGroup, authctx.OAuthPasswordGroup,
}

// Mount registers every element of the form instance of ctx. Mounting an
// already mounted context is a no-op.
func (e *Editor) Mount(ctx authctx.EntityContext) {
	if e.IsMounted(ctx) {
		return
	}

	for _, base := range authctx.BaseIDs() {
		id := ctx.ID(base)
		switch {
		case base == authctx.HeadersContainer:
			e.doc.Add(form.NewContainer(id))
		case isGroup(base):
			e.doc.Add(form.NewGroup(id))
		default:
			e.doc.Add(form.NewInput(id, inputTypes[base]))
		}
		if isSecret(base) {
			e.doc.Add(form.NewButton(authctx.ToggleID(id), secret.LabelShow))
		}
	}

	form.InputByID(e.doc, ctx.ID(authctx.AuthTypeSelect)).SetValue(string(authtype.None))
	form.InputByID(e.doc, ctx.ID(authctx.GrantTypeSelect)).SetValue(string(oauthgrant.DefaultGrantType))

	e.mounted = append(e.mounted, ctx)
	e.reporter.Debugf("Mounted form instance %s", e.resolver.Describe(ctx))
}

// Field returns the input with the given base identifier in ctx.
func (e *Editor) Field(ctx authctx.EntityContext, base string) *form.Input {
	return form.InputByID(e.doc, ctx.ID(base))
}

// Group returns the group with the given base identifier in ctx.
func (e *Editor) Group(ctx authctx.EntityContext, base string) *form.Group {
	return form.GroupByID(e.doc, ctx.ID(base))
}

// SetField sets the value of an input as a user edit would. Header JSON and
// select inputs are not settable; use the dedicated operations.
func (e *Editor) SetField(ctx authctx.EntityContext, base, value string) error {
	switch base {
	case authctx.HeadersJSON, authctx.AuthTypeSelect, authctx.GrantTypeSelect:
		return fmt.Errorf("field %s is managed by the form", base)
	}
	field := e.Field(ctx, base)
	if field == nil {
		return fmt.Errorf("field %s not found in %s", base, e.resolver.Describe(ctx))
	}
	field.SetValue(value)
	return nil
}

// SetStoredSecret displays a secret input as holding a stored secret. real
// is its plaintext if known locally.
func (e *Editor) SetStoredSecret(ctx authctx.EntityContext, base string, real *string) error {
	if !isSecret(base) {
		return fmt.Errorf("field %s does not hold a secret", base)
	}
	field := e.Field(ctx, base)
	if field == nil {
		return fmt.Errorf("field %s not found in %s", base, e.resolver.Describe(ctx))
	}
	field.SetType(form.TypePassword)
	field.SetValue(e.placeholder)
	field.MarkStoredSecret(real)
	if button := form.ButtonByID(e.doc, authctx.ToggleID(field.ID())); button != nil {
		button.Enable()
		button.SetLabel(secret.LabelShow)
		button.SetPressed(false)
	}
	return nil
}

// HandleAuthTypeChange applies the scheme named by value to the form
// instance triggerID belongs to.
func (e *Editor) HandleAuthTypeChange(triggerID, value string) {
	e.authTypes.SelectFromField(triggerID, value)
}

// SelectAuthType applies t to ctx.
func (e *Editor) SelectAuthType(ctx authctx.EntityContext, t authtype.AuthType) {
	e.authTypes.Select(t, e.authTypes.Groups(ctx))
}

// AuthType returns the scheme selected in ctx.
func (e *Editor) AuthType(ctx authctx.EntityContext) authtype.AuthType {
	return e.authTypes.Current(ctx)
}

// HandleOAuthGrantTypeChange applies the grant named by value to the form
// instance triggerID belongs to.
func (e *Editor) HandleOAuthGrantTypeChange(triggerID, value string) {
	e.grants.SelectFromField(triggerID, value)
}

// SelectGrantType applies grant to ctx.
func (e *Editor) SelectGrantType(ctx authctx.EntityContext, grant oauthgrant.GrantType) {
	e.grants.Select(grant, ctx)
}

// GrantType returns the grant selected in ctx.
func (e *Editor) GrantType(ctx authctx.EntityContext) oauthgrant.GrantType {
	return e.grants.Current(ctx)
}

// ToggleSecret toggles the secret input fieldID using its conventional
// toggle button.
func (e *Editor) ToggleSecret(fieldID string) {
	e.secrets.ToggleByID(fieldID, "")
}

// AddAuthHeader appends a header row and returns its identifier.
func (e *Editor) AddAuthHeader(containerID string, entry headers.Entry) string {
	return e.store.Add(containerID, entry)
}

// RemoveAuthHeader deletes a header row.
func (e *Editor) RemoveAuthHeader(rowID, containerID string) {
	e.store.Remove(rowID, containerID)
}

// UpdateAuthHeader edits a header row. It reports whether the row exists.
func (e *Editor) UpdateAuthHeader(containerID, rowID, key, value string) bool {
	return e.store.Update(containerID, rowID, key, value)
}

// LoadAuthHeaders replaces the rows of a container.
func (e *Editor) LoadAuthHeaders(containerID string, entries []*headers.Entry, opts headers.LoadOptions) {
	e.store.Load(containerID, entries, opts)
}

// LoadAuthHeadersJSON replaces the rows of a container from a backend
// payload and notifies how many rows were loaded.
func (e *Editor) LoadAuthHeadersJSON(containerID, raw string, opts headers.LoadOptions) error {
	if err := e.store.LoadJSON(containerID, raw, opts); err != nil {
		e.notifier.ShowError(err.Error(), containerID)
		return err
	}
	e.notifier.ShowSuccess(fmt.Sprintf("Loaded %d headers", e.store.RowCount(containerID)))
	return nil
}

// UpdateAuthHeadersJSON re-serializes a container into its JSON field.
func (e *Editor) UpdateAuthHeadersJSON(containerID string) {
	e.serializer.Recompute(containerID)
}

// HeaderRows returns the rows of a container.
func (e *Editor) HeaderRows(containerID string) []*headers.Row {
	return e.store.Rows(containerID)
}

// EvaluateHeaders reports how a container would serialize.
func (e *Editor) EvaluateHeaders(containerID string) (headers.Report, bool) {
	return e.serializer.Evaluate(containerID)
}

// HeadersJSONFieldID returns the JSON field identifier of a container.
func (e *Editor) HeadersJSONFieldID(containerID string) string {
	return e.store.JSONFieldID(containerID)
}

func isGroup(base string) bool {
	for _, id := range groupIDs {
		if id == base {
			return true
		}
	}
	return false
}

func isSecret(base string) bool {
	for _, id := range authctx.SecretIDs() {
		if id == base {
			return true
		}
	}
	return false
}
