package config

import (
	"fmt"
	"strings"
)

// Error types reported by LoadConfig.
const (
	ErrorTypeParse      = "parse"
	ErrorTypeValidation = "validation"
)

// ConfigurationError is one problem found in config.yaml.
type ConfigurationError struct {
	FilePath    string
	FileName    string
	ErrorType   string
	Message     string
	Details     string
	Suggestions []string
}

func (ce ConfigurationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ce.ErrorType, ce.FileName, ce.Message)
}

// DetailedError renders the error with its file, details and suggestions,
// one item per line.
func (ce ConfigurationError) DetailedError() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", ce.Message, ce.ErrorType)
	fmt.Fprintf(&b, "  File: %s", ce.FilePath)
	if ce.Details != "" {
		fmt.Fprintf(&b, "\n  Details: %s", ce.Details)
	}
	if len(ce.Suggestions) > 0 {
		b.WriteString("\n  Suggestions:")
		for _, s := range ce.Suggestions {
			fmt.Fprintf(&b, "\n    - %s", s)
		}
	}
	return b.String()
}

// ConfigurationErrorCollection aggregates every problem of one load so
// they can be fixed in a single pass.
type ConfigurationErrorCollection struct {
	Errors []ConfigurationError
}

func (cec ConfigurationErrorCollection) Error() string {
	switch len(cec.Errors) {
	case 0:
		return "no configuration errors"
	case 1:
		return cec.Errors[0].Error()
	default:
		return fmt.Sprintf("%d configuration errors: %s (and %d more)",
			len(cec.Errors), cec.Errors[0].Error(), len(cec.Errors)-1)
	}
}

// HasErrors reports whether the collection holds any error.
func (cec *ConfigurationErrorCollection) HasErrors() bool {
	return len(cec.Errors) > 0
}

func (cec *ConfigurationErrorCollection) Count() int {
	return len(cec.Errors)
}

func (cec *ConfigurationErrorCollection) Add(err ConfigurationError) {
	cec.Errors = append(cec.Errors, err)
}

// GetDetailedReport lists every error for display on stderr.
func (cec *ConfigurationErrorCollection) GetDetailedReport() string {
	if len(cec.Errors) == 0 {
		return "No configuration errors to report"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Invalid configuration (%d problems):", len(cec.Errors))
	for i, err := range cec.Errors {
		fmt.Fprintf(&b, "\n%d. %s", i+1, err.DetailedError())
	}
	return b.String()
}

// NewConfigurationError creates an error without details or suggestions.
func NewConfigurationError(filePath, fileName, errorType, message string) ConfigurationError {
	return NewConfigurationErrorWithDetails(filePath, fileName, errorType, message, "", nil)
}

func NewConfigurationErrorWithDetails(filePath, fileName, errorType, message, details string, suggestions []string) ConfigurationError {
	return ConfigurationError{
		FilePath:    filePath,
		FileName:    fileName,
		ErrorType:   errorType,
		Message:     message,
		Details:     details,
		Suggestions: suggestions,
	}
}
