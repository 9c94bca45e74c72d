// Package authctx resolves which logical form instance a field belongs to.
//
// Every authentication form exists once per entity context: the base form,
// the gateway (-gw) and agent (-a2a) connector forms, and their edit-mode
// variants (-gw-edit, -a2a-edit). Base-family edit mode uses the legacy
// "edit-" identifier prefix instead of a suffix, e.g.
// edit-auth-headers-container.
//
// EntityContext is the value object produced by Resolver from the identifier
// of the field that triggered an interaction. All sibling identifiers are
// composed through EntityContext.ID, so no call site concatenates suffixes by
// hand.
//
// NamingStrategy maps a header container identifier to the identifier of the
// hidden field holding its serialized JSON. DefaultNaming does this by string
// transformation, which keeps new suffixes working without a lookup table;
// TemplateNaming lets configuration supply a sprig template instead.
package authctx
