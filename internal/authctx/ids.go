package authctx

// Base identifiers of the elements of one form instance. The identifier of an
// element in a given context is EntityContext.ID(base).
const (
	AuthTypeSelect = "auth-type"

	BasicGroup      = "auth-basic-fields"
	BearerGroup     = "auth-bearer-fields"
	HeadersGroup    = "auth-headers-fields"
	OAuthGroup      = "auth-oauth-fields"
	QueryParamGroup = "auth-query_param-fields"

	Username        = "auth-username"
	Password        = "auth-password"
	Token           = "auth-token"
	QueryParamKey   = "auth-query-param-key"
	QueryParamValue = "auth-query-param-value"

	HeadersContainer = "auth-headers-container"
	HeadersJSON      = "auth-headers-json"

	GrantTypeSelect    = "oauth-grant-type"
	OAuthClientID      = "oauth-client-id"
	OAuthClientSecret  = "oauth-client-secret"
	OAuthTokenURL      = "oauth-token-url"
	OAuthAuthorizeURL  = "oauth-authorization-url"
	OAuthRedirectURI   = "oauth-redirect-uri"
	OAuthScopes        = "oauth-scopes"
	OAuthAuthCodeGroup = "oauth-auth-code-fields"
	OAuthUsernameGroup = "oauth-username-field"
	OAuthPasswordGroup = "oauth-password-field"
	OAuthUsername      = "oauth-username"
	OAuthPassword      = "oauth-password"
)

// ToggleSuffix is appended to a secret input's identifier to form the
// identifier of its reveal/mask button.
const ToggleSuffix = "-toggle"

// legacyEditPrefix marks base-family edit-mode identifiers.
const legacyEditPrefix = "edit-"

// editToken is the trailing suffix token of edit-mode contexts.
const editToken = "edit"

// BaseIDs lists every base identifier the resolver recognizes.
func BaseIDs() []string {
	return []string{
		AuthTypeSelect,
		BasicGroup, BearerGroup, HeadersGroup, OAuthGroup, QueryParamGroup,
		Username, Password, Token, QueryParamKey, QueryParamValue,
		HeadersContainer, HeadersJSON,
		GrantTypeSelect, OAuthClientID, OAuthClientSecret, OAuthTokenURL,
		OAuthAuthorizeURL, OAuthRedirectURI, OAuthScopes,
		OAuthAuthCodeGroup, OAuthUsernameGroup, OAuthPasswordGroup,
		OAuthUsername, OAuthPassword,
	}
}

// SecretIDs lists the base identifiers of inputs that hold secrets and get a
// reveal/mask toggle.
func SecretIDs() []string {
	return []string{Password, Token, QueryParamValue, OAuthClientSecret, OAuthPassword}
}

// ToggleID returns the identifier of the toggle button for a secret input.
func ToggleID(inputID string) string {
	return inputID + ToggleSuffix
}
