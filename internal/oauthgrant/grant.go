// Package oauthgrant controls the grant-type dependent fields of the OAuth
// section of a form instance.
package oauthgrant

import (
	"strings"
)

// GrantType is an OAuth 2.0 authorization flow.
type GrantType string

const (
	AuthorizationCode GrantType = "authorization_code"
	Password          GrantType = "password"
	ClientCredentials GrantType = "client_credentials"
)

// DefaultGrantType is used when a form instance has no grant selected.
const DefaultGrantType = AuthorizationCode

// ParseGrantType normalizes a grant type name. Unknown names are kept as-is:
// they select no grant-specific fields.
func ParseGrantType(name string) GrantType {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultGrantType
	}
	return GrantType(name)
}

// Known reports whether g is one of the grants with dedicated fields.
func (g GrantType) Known() bool {
	switch g {
	case AuthorizationCode, Password, ClientCredentials:
		return true
	default:
		return false
	}
}

// All lists the known grant types.
func All() []GrantType {
	return []GrantType{AuthorizationCode, ClientCredentials, Password}
}
