package authctx

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"connectorauth/pkg/logging"
)

// NamingStrategy maps a header container identifier to the identifier of
// the hidden field that receives its serialized JSON.
type NamingStrategy func(containerID string) string

const (
	containerToken = "container"
	jsonToken      = "json"
)

// DefaultNaming replaces the last "container" segment of the identifier with
// "json":
//
//	auth-headers-container          -> auth-headers-json
//	auth-headers-container-gw       -> auth-headers-json-gw
//	auth-headers-container-a2a-edit -> auth-headers-json-a2a-edit
//	edit-auth-headers-container     -> edit-auth-headers-json
//
// Identifiers without a "container" segment get "-json" appended.
func DefaultNaming(containerID string) string {
	tokens := strings.Split(containerID, "-")
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i] == containerToken {
			tokens[i] = jsonToken
			return strings.Join(tokens, "-")
		}
	}
	return containerID + "-" + jsonToken
}

// namingData is the template input of TemplateNaming.
type namingData struct {
	Container string
}

// TemplateNaming builds a naming strategy from a text/template with the
// sprig function map, e.g.
//
//	{{ .Container | replace "-container" "-json" }}
//
// The template is parsed once. If executing it fails or yields an empty
// identifier, DefaultNaming is used for that call.
func TemplateNaming(text string) (NamingStrategy, error) {
	tmpl, err := template.New("headers-json").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid naming template: %w", err)
	}

	return func(containerID string) string {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, namingData{Container: containerID}); err != nil {
			logging.Warn("Context", "Naming template failed for %s, using default: %v", containerID, err)
			return DefaultNaming(containerID)
		}
		out := strings.TrimSpace(buf.String())
		if out == "" {
			return DefaultNaming(containerID)
		}
		return out
	}, nil
}
