package config

import (
	"fmt"
	"strings"

	"connectorauth/internal/authctx"
	"connectorauth/pkg/logging"
)

// ValidationError is a problem with one config key.
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationErrors collects every problem of one config.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	messages := make([]string, 0, len(ve))
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

func (ve *ValidationErrors) Add(field, format string, args ...any) {
	*ve = append(*ve, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a merged configuration.
func Validate(cfg Config) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.MaskedAuthValue) == "" {
		errs.Add("maskedAuthValue", "is required")
	}
	if cfg.MaxHeaders <= 0 {
		errs.Add("maxHeaders", "must be greater than zero, got %d", cfg.MaxHeaders)
	}

	if len(cfg.Families) == 0 {
		errs.Add("families", "must define at least one entity family")
	}
	seen := make(map[string]string, len(cfg.Families))
	for token, name := range cfg.Families {
		field := "families." + token
		if err := authctx.ValidateFamilyToken(token); err != nil {
			errs.Add(field, "%v", err)
		}
		if strings.TrimSpace(name) == "" {
			errs.Add(field, "display name is required")
			continue
		}
		if other, dup := seen[name]; dup {
			errs.Add(field, "display name %q is already used by %q", name, other)
		}
		seen[name] = token
	}

	if cfg.Naming.HeadersJSON != "" {
		if _, err := authctx.TemplateNaming(cfg.Naming.HeadersJSON); err != nil {
			errs.Add("naming.headersJSON", "%v", err)
		}
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		errs.Add("log.level", "%v", err)
	}

	return errs
}
