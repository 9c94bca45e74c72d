package authctx

import (
	"fmt"
	"regexp"
	"strings"
)

// Known entity family tokens.
const (
	FamilyGateway = "gw"
	FamilyAgent   = "a2a"
)

// DefaultFamilies maps family tokens to display names.
func DefaultFamilies() map[string]string {
	return map[string]string{
		FamilyGateway: "gateway",
		FamilyAgent:   "agent",
	}
}

// familyTokenPattern defines valid family tokens. Tokens become identifier
// suffix segments, so they cannot contain the "-" separator.
var familyTokenPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// ValidateFamilyToken checks that token can be used as a suffix segment.
func ValidateFamilyToken(token string) error {
	if token == "" {
		return fmt.Errorf("family token cannot be empty")
	}
	if token == editToken {
		return fmt.Errorf("family token %q is reserved for edit mode", editToken)
	}
	if !familyTokenPattern.MatchString(token) {
		return fmt.Errorf("family token %q must contain only lowercase letters and digits", token)
	}
	return nil
}

// EntityContext identifies one logical form instance: an entity family in
// create or edit mode. The zero value is the base create form.
type EntityContext struct {
	// Family is the suffix token of the entity family ("gw", "a2a", ...).
	// Empty for the base form.
	Family string
	// Edit is true for edit-mode forms.
	Edit bool
}

// Base is the base create-form context.
var Base = EntityContext{}

// Suffix returns the identifier suffix of the context: "", "-gw", "-a2a",
// "-gw-edit", "-a2a-edit". Base-family edit mode has no suffix; it uses the
// legacy prefix, see ID.
func (c EntityContext) Suffix() string {
	if c.Family == "" {
		return ""
	}
	if c.Edit {
		return "-" + c.Family + "-" + editToken
	}
	return "-" + c.Family
}

// ID composes the identifier of the element with the given base identifier
// in this context.
func (c EntityContext) ID(base string) string {
	if c.Family == "" && c.Edit {
		return legacyEditPrefix + base
	}
	return base + c.Suffix()
}

// String returns the token form of the context: "base", "edit", "gw",
// "gw-edit", ...
func (c EntityContext) String() string {
	switch {
	case c.Family == "" && c.Edit:
		return editToken
	case c.Family == "":
		return "base"
	case c.Edit:
		return c.Family + "-" + editToken
	default:
		return c.Family
	}
}

// parseSuffix converts an identifier suffix such as "-gw-edit" into a context.
// A bare "-edit" suffix is accepted as base-family edit mode.
func parseSuffix(suffix string) EntityContext {
	tokens := strings.Split(strings.TrimPrefix(suffix, "-"), "-")
	var ctx EntityContext
	if n := len(tokens); n > 0 && tokens[n-1] == editToken {
		ctx.Edit = true
		tokens = tokens[:n-1]
	}
	ctx.Family = strings.Join(tokens, "-")
	return ctx
}
