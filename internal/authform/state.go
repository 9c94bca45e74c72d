package authform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authtype"
	"connectorauth/internal/headers"
	"connectorauth/internal/oauthgrant"
)

// State is the content of a form-state file: everything needed to rebuild
// one form instance.
//
//	entity: gateway-edit
//	authType: authheaders
//	fields:
//	  auth-username: admin
//	storedSecrets:
//	  auth-password: null        # stored, plaintext unknown
//	  oauth-client-secret: s3cr3t # stored, plaintext known
//	maskHeaders: true
//	headers:
//	  - key: X-API-Key
//	    value: abc
type State struct {
	// Entity names the context, e.g. "base", "edit", "gateway", "agent-edit".
	Entity    string `yaml:"entity"`
	AuthType  string `yaml:"authType,omitempty"`
	GrantType string `yaml:"grantType,omitempty"`

	// Fields maps base field identifiers to typed values.
	Fields map[string]string `yaml:"fields,omitempty"`
	// StoredSecrets maps secret field identifiers to their plaintext, or
	// null when the plaintext is not available locally.
	StoredSecrets map[string]*string `yaml:"storedSecrets,omitempty"`

	// Headers are loaded into the header container. HeadersJSON is an
	// alternative backend payload; it wins when both are set.
	Headers     []*headers.Entry `yaml:"headers,omitempty"`
	HeadersJSON string           `yaml:"headersJSON,omitempty"`
	MaskHeaders bool             `yaml:"maskHeaders,omitempty"`
}

// ParseState decodes a form-state document. Unknown keys are rejected.
func ParseState(data []byte) (State, error) {
	var st State
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&st); err != nil {
		if errors.Is(err, io.EOF) {
			return State{}, fmt.Errorf("state document is empty")
		}
		return State{}, fmt.Errorf("failed to parse state: %w", err)
	}
	return st, nil
}

// Marshal encodes the state as YAML.
func (st State) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(st); err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadStateFile reads a form-state file and applies it.
func (e *Editor) LoadStateFile(path string) (authctx.EntityContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return authctx.Base, fmt.Errorf("failed to read state file %s: %w", path, err)
	}
	st, err := ParseState(data)
	if err != nil {
		return authctx.Base, fmt.Errorf("%s: %w", path, err)
	}
	return e.ApplyState(st)
}

// ApplyState mounts the state's context if needed and rebuilds its form
// instance from st. Fields absent from st keep their current values.
func (e *Editor) ApplyState(st State) (authctx.EntityContext, error) {
	ctx, err := e.resolver.Parse(st.Entity)
	if err != nil {
		return authctx.Base, err
	}
	scheme, err := authtype.ParseAuthType(st.AuthType)
	if err != nil {
		return ctx, err
	}

	e.Mount(ctx)

	for _, base := range sortedKeys(st.Fields) {
		if err := e.SetField(ctx, base, st.Fields[base]); err != nil {
			return ctx, err
		}
	}
	for _, base := range sortedKeys(st.StoredSecrets) {
		if err := e.SetStoredSecret(ctx, base, st.StoredSecrets[base]); err != nil {
			return ctx, err
		}
	}

	containerID := ctx.ID(authctx.HeadersContainer)
	opts := headers.LoadOptions{MaskValues: st.MaskHeaders}
	switch {
	case st.HeadersJSON != "":
		if err := e.store.LoadJSON(containerID, st.HeadersJSON, opts); err != nil {
			return ctx, err
		}
	case st.Headers != nil:
		e.store.Load(containerID, st.Headers, opts)
	}

	e.grants.Select(oauthgrant.ParseGrantType(st.GrantType), ctx)
	e.SelectAuthType(ctx, scheme)

	e.reporter.Debugf("Applied state to %s", e.resolver.Describe(ctx))
	return ctx, nil
}

// CaptureState snapshots the form instance of ctx. Fresh secret input is
// captured as a field value, stored secrets as stored secrets.
func (e *Editor) CaptureState(ctx authctx.EntityContext) State {
	st := State{
		Entity:    e.resolver.Describe(ctx),
		AuthType:  string(e.AuthType(ctx)),
		GrantType: string(e.GrantType(ctx)),
	}

	for _, base := range authctx.BaseIDs() {
		if _, ok := inputTypes[base]; !ok {
			continue
		}
		switch base {
		case authctx.AuthTypeSelect, authctx.GrantTypeSelect, authctx.HeadersJSON:
			continue
		}
		field := e.Field(ctx, base)
		if field == nil {
			continue
		}
		if field.IsStoredSecret() && e.unchangedSecret(field.Value(), field) {
			if st.StoredSecrets == nil {
				st.StoredSecrets = make(map[string]*string)
			}
			var real *string
			if r, ok := field.RealValue(); ok {
				v := r.Reveal()
				real = &v
			}
			st.StoredSecrets[base] = real
			continue
		}
		if field.Value() == "" {
			continue
		}
		if st.Fields == nil {
			st.Fields = make(map[string]string)
		}
		st.Fields[base] = field.Value()
	}

	for _, row := range e.store.Rows(ctx.ID(authctx.HeadersContainer)) {
		if row.Empty() {
			continue
		}
		entry := &headers.Entry{Key: row.Key.Value(), Value: row.Value.Value(), Existing: row.Existing}
		if row.Value.IsStoredSecret() && e.unchangedSecret(row.Value.Value(), row.Value) {
			entry.IsMasked = true
			entry.Value = ""
			if r, ok := row.Value.RealValue(); ok {
				v := r.Reveal()
				entry.RealValue = &v
			}
		}
		st.Headers = append(st.Headers, entry)
	}

	return st
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
