// Package authform wires the authentication form controllers over one form
// document.
//
// An Editor mounts one form instance per entity context and exposes the
// operations the surrounding application calls: scheme and grant selection,
// secret toggling, header list maintenance and serialization. It also reads
// and writes form-state files and assembles the submission payload.
//
//	editor := authform.NewEditor(opts)
//	ctx := authctx.EntityContext{Family: authctx.FamilyGateway}
//	editor.Mount(ctx)
//	editor.HandleAuthTypeChange(ctx.ID(authctx.AuthTypeSelect), "authheaders")
//	editor.AddAuthHeader(ctx.ID(authctx.HeadersContainer), headers.Entry{Key: "X-API-Key", Value: "abc"})
//	payload, err := editor.Payload(ctx)
package authform
