package config

import (
	"connectorauth/internal/authctx"
	"connectorauth/pkg/logging"
)

// Config is the top-level configuration structure for connectorauth.
type Config struct {
	// MaskedAuthValue is the placeholder shown in place of stored secrets.
	MaskedAuthValue string `yaml:"maskedAuthValue"`
	// MaxHeaders is the maximum number of header rows per container.
	MaxHeaders int `yaml:"maxHeaders"`
	// Families maps entity family tokens to display names.
	Families map[string]string `yaml:"families"`
	Naming   NamingConfig      `yaml:"naming,omitempty"`
	Log      LogConfig         `yaml:"log,omitempty"`
}

// NamingConfig controls identifier derivation.
type NamingConfig struct {
	// HeadersJSON is a template mapping a header container identifier to its
	// JSON field identifier. Empty selects the default transformation.
	HeadersJSON string `yaml:"headersJSON,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// NamingStrategy builds the header JSON naming strategy.
func (c Config) NamingStrategy() (authctx.NamingStrategy, error) {
	if c.Naming.HeadersJSON == "" {
		return authctx.DefaultNaming, nil
	}
	return authctx.TemplateNaming(c.Naming.HeadersJSON)
}

// Resolver builds an entity context resolver for the configured families.
func (c Config) Resolver() *authctx.Resolver {
	return authctx.NewResolver(c.Families)
}

// LogLevel returns the configured log level, INFO when unset or invalid.
func (c Config) LogLevel() logging.LogLevel {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}
