package render

import "connectorauth/internal/authctx"

var groupOrder = []string{
	authctx.BasicGroup,
	authctx.BearerGroup,
	authctx.HeadersGroup,
	authctx.OAuthGroup,
	authctx.QueryParamGroup,
	authctx.OAuthAuthCodeGroup,
	authctx.OAuthUsernameGroup,
	authctx.OAuthPasswordGroup,
}

var fieldOrder = []string{
	authctx.Username,
	authctx.Password,
	authctx.Token,
	authctx.HeadersJSON,
	authctx.GrantTypeSelect,
	authctx.OAuthClientID,
	authctx.OAuthClientSecret,
	authctx.OAuthTokenURL,
	authctx.OAuthAuthorizeURL,
	authctx.OAuthRedirectURI,
	authctx.OAuthScopes,
	authctx.OAuthUsername,
	authctx.OAuthPassword,
	authctx.QueryParamKey,
	authctx.QueryParamValue,
}

// fieldGroups lists the groups that must all be visible for a field to show.
var fieldGroups = map[string][]string{
	authctx.Username:          {authctx.BasicGroup},
	authctx.Password:          {authctx.BasicGroup},
	authctx.Token:             {authctx.BearerGroup},
	authctx.HeadersJSON:       {authctx.HeadersGroup},
	authctx.GrantTypeSelect:   {authctx.OAuthGroup},
	authctx.OAuthClientID:     {authctx.OAuthGroup},
	authctx.OAuthClientSecret: {authctx.OAuthGroup},
	authctx.OAuthTokenURL:     {authctx.OAuthGroup},
	authctx.OAuthAuthorizeURL: {authctx.OAuthGroup, authctx.OAuthAuthCodeGroup},
	authctx.OAuthRedirectURI:  {authctx.OAuthGroup, authctx.OAuthAuthCodeGroup},
	authctx.OAuthScopes:       {authctx.OAuthGroup},
	authctx.OAuthUsername:     {authctx.OAuthGroup, authctx.OAuthUsernameGroup},
	authctx.OAuthPassword:     {authctx.OAuthGroup, authctx.OAuthPasswordGroup},
	authctx.QueryParamKey:     {authctx.QueryParamGroup},
	authctx.QueryParamValue:   {authctx.QueryParamGroup},
}
