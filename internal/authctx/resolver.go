package authctx

import (
	"fmt"
	"sort"
	"strings"
)

// Resolver derives entity contexts from element identifiers.
type Resolver struct {
	bases    []string
	families map[string]string
}

// NewResolver creates a resolver recognizing the given family tokens
// (token -> display name) and base identifiers. With no bases, BaseIDs is
// used.
func NewResolver(families map[string]string, bases ...string) *Resolver {
	if len(families) == 0 {
		families = DefaultFamilies()
	}
	if len(bases) == 0 {
		bases = BaseIDs()
	}

	sorted := make([]string, len(bases))
	copy(sorted, bases)
	// Longest first so "oauth-username-field" wins over "oauth-username".
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	fams := make(map[string]string, len(families))
	for token, name := range families {
		fams[token] = name
	}

	return &Resolver{bases: sorted, families: fams}
}

// Resolve derives the entity context of the element with the given
// identifier. Identifiers built from a known base identifier resolve exactly,
// including suffixes for families the resolver has never seen. Anything else
// falls back to scanning the identifier's tokens for "edit" and a known
// family token.
func (r *Resolver) Resolve(id string) EntityContext {
	id = strings.TrimSuffix(id, ToggleSuffix)
	rest, legacy := strings.CutPrefix(id, legacyEditPrefix)

	for _, base := range r.bases {
		if rest == base {
			return EntityContext{Edit: legacy}
		}
		if !legacy && strings.HasPrefix(rest, base+"-") {
			return parseSuffix(rest[len(base):])
		}
	}

	return r.fromTokens(id)
}

func (r *Resolver) fromTokens(id string) EntityContext {
	var ctx EntityContext
	for _, token := range strings.Split(id, "-") {
		if token == editToken {
			ctx.Edit = true
			continue
		}
		if _, known := r.families[token]; known && ctx.Family == "" {
			ctx.Family = token
		}
	}
	return ctx
}

// Parse accepts either token form ("gw-edit", "base", "edit") or display
// names ("gateway-edit", "agent").
func (r *Resolver) Parse(name string) (EntityContext, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "base":
		return Base, nil
	case editToken, "base-" + editToken:
		return EntityContext{Edit: true}, nil
	}

	family, edit := strings.CutSuffix(name, "-"+editToken)
	if _, ok := r.families[family]; ok {
		return EntityContext{Family: family, Edit: edit}, nil
	}
	for token, display := range r.families {
		if display == family {
			return EntityContext{Family: token, Edit: edit}, nil
		}
	}
	return Base, fmt.Errorf("unknown entity context %q", name)
}

// Describe returns a human-readable context name such as "gateway-edit".
// Unknown families are described by their token.
func (r *Resolver) Describe(ctx EntityContext) string {
	if ctx.Family == "" {
		return ctx.String()
	}
	name, ok := r.families[ctx.Family]
	if !ok {
		name = ctx.Family
	}
	if ctx.Edit {
		return name + "-" + editToken
	}
	return name
}

// Families returns the known family tokens in sorted order.
func (r *Resolver) Families() []string {
	tokens := make([]string, 0, len(r.families))
	for token := range r.families {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
