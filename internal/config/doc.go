// Package config provides configuration management for connectorauth.
//
// Configuration is loaded from a single directory. The default directory is
// ~/.config/connectorauth; commands accept --config to point elsewhere.
//
// # Configuration Directory
//
// The directory contains:
//   - config.yaml (main configuration file)
//   - states/ (saved form-state files, see StateStorage)
//
// A missing config.yaml is not an error: the defaults of GetDefaultConfig
// are used. Values present in the file override the defaults field by field.
//
// # File Format
//
//	maskedAuthValue: "*****"
//	maxHeaders: 100
//	families:
//	  gw: gateway
//	  a2a: agent
//	naming:
//	  headersJSON: '{{ .Container | replace "-container" "-json" }}'
//	log:
//	  level: info
//
// maskedAuthValue must match the placeholder the backend uses for stored
// secrets; it is passed to every form controller. naming.headersJSON is an
// optional text/template (with sprig functions) mapping a header container
// identifier to the identifier of its JSON field; when empty the container
// segment of the identifier is replaced with "json".
//
// # Validation
//
// LoadConfig validates the merged configuration and returns a
// ConfigurationErrorCollection describing every problem found.
package config
