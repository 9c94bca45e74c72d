package authform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/sjson"
	"golang.org/x/oauth2"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authtype"
	"connectorauth/internal/form"
	"connectorauth/internal/oauthgrant"
)

// ErrNotMounted is returned for operations on a context that was never
// mounted.
var ErrNotMounted = errors.New("form instance not mounted")

// Payload assembles the submission payload of ctx:
//
//	{"auth_type":"basic","auth_username":"admin","auth_password":"*****"}
//
// A stored secret that was not changed is sent as the masking placeholder,
// which the backend treats as "keep the stored value". Header values are
// taken from the container's JSON field as serialized.
func (e *Editor) Payload(ctx context.Context, entity authctx.EntityContext) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !e.IsMounted(entity) {
		return nil, fmt.Errorf("%w: %s", ErrNotMounted, e.resolver.Describe(entity))
	}
	scheme := e.AuthType(entity)
	if err := e.checkRequired(entity, scheme); err != nil {
		return nil, err
	}
	out := []byte(`{}`)
	set := func(path string, value interface{}) error {
		var err error
		out, err = sjson.SetBytes(out, path, value)
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
		return nil
	}

	if err := set("auth_type", string(scheme)); err != nil {
		return nil, err
	}

	switch scheme {
	case authtype.Basic:
		if err := set("auth_username", e.value(entity, authctx.Username)); err != nil {
			return nil, err
		}
		if err := set("auth_password", e.submittedSecret(entity, authctx.Password)); err != nil {
			return nil, err
		}
	case authtype.Bearer:
		if err := set("auth_token", e.submittedSecret(entity, authctx.Token)); err != nil {
			return nil, err
		}
	case authtype.AuthHeaders:
		raw, err := e.headersPayload(entity)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "auth_headers", raw); err != nil {
			return nil, fmt.Errorf("failed to set auth_headers: %w", err)
		}
	case authtype.OAuth:
		raw, err := e.oauthPayload(entity)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "oauth_config", raw); err != nil {
			return nil, fmt.Errorf("failed to set oauth_config: %w", err)
		}
	case authtype.QueryParam:
		if err := set("auth_query_param_key", e.value(entity, authctx.QueryParamKey)); err != nil {
			return nil, err
		}
		if err := set("auth_query_param_value", e.submittedSecret(entity, authctx.QueryParamValue)); err != nil {
			return nil, err
		}
	case authtype.None:
	}

	return out, nil
}

// AuthorizeURL previews the authorization-code URL of ctx's OAuth
// configuration. No request is made.
func (e *Editor) AuthorizeURL(entity authctx.EntityContext, state string) (string, error) {
	if !e.IsMounted(entity) {
		return "", fmt.Errorf("%w: %s", ErrNotMounted, e.resolver.Describe(entity))
	}
	if grant := e.GrantType(entity); grant != oauthgrant.AuthorizationCode {
		return "", fmt.Errorf("grant type %s has no authorization URL", grant)
	}
	cfg := e.oauthConfig(entity)
	if cfg.ClientID == "" || cfg.Endpoint.AuthURL == "" {
		return "", fmt.Errorf("client id and authorization URL are required")
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// schemeFields lists the inputs submitted with each scheme. The OAuth
// username and password are added only for the password grant.
var schemeFields = map[authtype.AuthType][]string{
	authtype.Basic:      {authctx.Username, authctx.Password},
	authtype.Bearer:     {authctx.Token},
	authtype.QueryParam: {authctx.QueryParamKey, authctx.QueryParamValue},
	authtype.OAuth: {
		authctx.OAuthClientID, authctx.OAuthClientSecret, authctx.OAuthTokenURL,
		authctx.OAuthAuthorizeURL, authctx.OAuthRedirectURI, authctx.OAuthScopes,
	},
}

// checkRequired fails on empty required inputs of the selected scheme.
// Inputs of other schemes keep their flags but are not submitted.
func (e *Editor) checkRequired(entity authctx.EntityContext, scheme authtype.AuthType) error {
	bases := schemeFields[scheme]
	if scheme == authtype.OAuth && e.GrantType(entity) == oauthgrant.Password {
		bases = append(append([]string(nil), bases...), authctx.OAuthUsername, authctx.OAuthPassword)
	}

	var missing []string
	for _, base := range bases {
		field := e.Field(entity, base)
		if field != nil && field.Required() && strings.TrimSpace(field.Value()) == "" {
			missing = append(missing, base)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required fields are empty: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (e *Editor) headersPayload(entity authctx.EntityContext) ([]byte, error) {
	containerID := entity.ID(authctx.HeadersContainer)
	report, ok := e.serializer.Evaluate(containerID)
	if !ok {
		return []byte(`[]`), nil
	}
	if report.TooMany {
		return nil, errors.New(report.LimitMessage())
	}
	if len(report.MissingKey) > 0 {
		return nil, errors.New("header name is required when a value is provided")
	}

	e.serializer.Recompute(containerID)
	raw := ""
	if field := form.InputByID(e.doc, report.JSONFieldID); field != nil {
		raw = field.Value()
	}
	if raw == "" {
		return []byte(`[]`), nil
	}
	return []byte(raw), nil
}

func (e *Editor) oauthConfig(entity authctx.EntityContext) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     e.value(entity, authctx.OAuthClientID),
		ClientSecret: e.submittedSecret(entity, authctx.OAuthClientSecret),
		Endpoint: oauth2.Endpoint{
			AuthURL:  e.value(entity, authctx.OAuthAuthorizeURL),
			TokenURL: e.value(entity, authctx.OAuthTokenURL),
		},
		RedirectURL: e.value(entity, authctx.OAuthRedirectURI),
		Scopes:      splitScopes(e.value(entity, authctx.OAuthScopes)),
	}
}

func (e *Editor) oauthPayload(entity authctx.EntityContext) ([]byte, error) {
	grant := e.GrantType(entity)
	cfg := e.oauthConfig(entity)

	fields := map[string]interface{}{
		"grant_type": string(grant),
	}

	switch grant {
	case oauthgrant.AuthorizationCode:
		fields["client_id"] = cfg.ClientID
		fields["client_secret"] = cfg.ClientSecret
		fields["authorization_url"] = cfg.Endpoint.AuthURL
		fields["token_url"] = cfg.Endpoint.TokenURL
		fields["redirect_uri"] = cfg.RedirectURL
		fields["scopes"] = cfg.Scopes
	case oauthgrant.Password:
		fields["client_id"] = cfg.ClientID
		fields["client_secret"] = cfg.ClientSecret
		fields["token_url"] = cfg.Endpoint.TokenURL
		fields["scopes"] = cfg.Scopes
		fields["username"] = e.value(entity, authctx.OAuthUsername)
		fields["password"] = e.submittedSecret(entity, authctx.OAuthPassword)
	default:
		fields["client_id"] = cfg.ClientID
		fields["client_secret"] = cfg.ClientSecret
		fields["token_url"] = cfg.Endpoint.TokenURL
		fields["scopes"] = cfg.Scopes
	}

	out := []byte(`{}`)
	for _, key := range sortedKeys(fields) {
		value := fields[key]
		if scopes, ok := value.([]string); ok && scopes == nil {
			value = []string{}
		}
		var err error
		if out, err = sjson.SetBytes(out, key, value); err != nil {
			return nil, fmt.Errorf("failed to set oauth_config.%s: %w", key, err)
		}
	}
	return out, nil
}

func (e *Editor) value(entity authctx.EntityContext, base string) string {
	if field := e.Field(entity, base); field != nil {
		return strings.TrimSpace(field.Value())
	}
	return ""
}

// submittedSecret returns the value sent for a secret input: the placeholder
// for an unchanged stored secret, the typed value otherwise.
func (e *Editor) submittedSecret(entity authctx.EntityContext, base string) string {
	field := e.Field(entity, base)
	if field == nil {
		return ""
	}
	if field.IsStoredSecret() && e.unchangedSecret(field.Value(), field) {
		return e.placeholder
	}
	return field.Value()
}

func (e *Editor) unchangedSecret(value string, field *form.Input) bool {
	if value == e.placeholder {
		return true
	}
	real, known := field.RealValue()
	return known && real.Equal(value)
}

func splitScopes(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
}
