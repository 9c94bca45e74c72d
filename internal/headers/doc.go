// Package headers stores the custom header rows of a header container and
// serializes them into the container's hidden JSON field.
//
// A Store owns the rows of every container registered in a form document.
// Each mutation fires the store's change hook; the Editor wires that hook to
// Serializer.Recompute so the JSON field always reflects the current rows:
//
//	store := headers.NewStore(doc, headers.Options{Placeholder: "*****"})
//	serializer := headers.NewSerializer(store, headers.SerializerOptions{})
//	store.OnChange(serializer.Recompute)
//
//	store.Add("auth-headers-container-gw", headers.Entry{Key: "X-API-Key", Value: "abc"})
//	// auth-headers-json-gw now holds [{"key":"X-API-Key","value":"abc"}]
//
// Neither type is safe for concurrent use; both run on the caller's event
// loop.
package headers
