package config

import (
	"connectorauth/internal/authctx"
	"connectorauth/internal/headers"
)

// DefaultMaskedAuthValue is the placeholder the backend uses for stored secrets.
const DefaultMaskedAuthValue = "*****"

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() Config {
	return Config{
		MaskedAuthValue: DefaultMaskedAuthValue,
		MaxHeaders:      headers.DefaultMaxHeaders,
		Families:        authctx.DefaultFamilies(),
		Log: LogConfig{
			Level: "info",
		},
	}
}
