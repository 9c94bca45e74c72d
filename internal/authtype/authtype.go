// Package authtype controls which authentication field group of a form
// instance is visible.
package authtype

import (
	"fmt"
	"strings"

	"connectorauth/internal/authctx"
)

// AuthType is an authentication scheme of a connector.
type AuthType string

const (
	None        AuthType = "none"
	Basic       AuthType = "basic"
	Bearer      AuthType = "bearer"
	AuthHeaders AuthType = "authheaders"
	OAuth       AuthType = "oauth"
	QueryParam  AuthType = "query_param"
)

// All lists every scheme in selection order.
func All() []AuthType {
	return []AuthType{None, Basic, Bearer, AuthHeaders, OAuth, QueryParam}
}

// ParseAuthType converts a scheme name into an AuthType. The empty string is
// None.
func ParseAuthType(name string) (AuthType, error) {
	t := AuthType(strings.ToLower(strings.TrimSpace(name)))
	switch t {
	case "":
		return None, nil
	case None, Basic, Bearer, AuthHeaders, OAuth, QueryParam:
		return t, nil
	default:
		return None, fmt.Errorf("unknown auth type %q", name)
	}
}

// GroupID returns the base identifier of the field group shown for t, or ""
// for None.
func (t AuthType) GroupID() string {
	switch t {
	case Basic:
		return authctx.BasicGroup
	case Bearer:
		return authctx.BearerGroup
	case AuthHeaders:
		return authctx.HeadersGroup
	case OAuth:
		return authctx.OAuthGroup
	case QueryParam:
		return authctx.QueryParamGroup
	case None:
		return ""
	default:
		return ""
	}
}
