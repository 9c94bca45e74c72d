package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"connectorauth/pkg/logging"
)

const (
	userConfigDir  = ".config/connectorauth"
	configFileName = "config.yaml"
)

// osUserHomeDir is replaced in tests.
var osUserHomeDir = os.UserHomeDir

// GetUserConfigDir returns the default configuration directory.
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

func GetDefaultConfigPathOrPanic() string {
	dir, err := GetUserConfigDir()
	if err != nil {
		panic(err)
	}
	return dir
}

// LoadConfig loads config.yaml from configPath on top of the defaults and
// validates the result.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		logging.Info("ConfigLoader", "Error loading config.yaml from %s: %s", configFilePath, err)
		return Config{}, err
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		var collection ConfigurationErrorCollection
		collection.Add(NewConfigurationErrorWithDetails(configFilePath, configFileName, ErrorTypeParse,
			"config file is not valid YAML", err.Error(),
			[]string{"Check indentation and quoting", "Compare against the format documented for the config package"}))
		return Config{}, collection
	}
	config = merge(config, fileConfig)

	if verrs := Validate(config); verrs.HasErrors() {
		var collection ConfigurationErrorCollection
		for _, verr := range verrs {
			collection.Add(NewConfigurationError(configFilePath, configFileName, ErrorTypeValidation, verr.Error()))
		}
		return Config{}, collection
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// merge overlays the fields set in override onto base.
func merge(base, override Config) Config {
	if override.MaskedAuthValue != "" {
		base.MaskedAuthValue = override.MaskedAuthValue
	}
	if override.MaxHeaders != 0 {
		base.MaxHeaders = override.MaxHeaders
	}
	if override.Families != nil {
		base.Families = override.Families
	}
	if override.Naming.HeadersJSON != "" {
		base.Naming.HeadersJSON = override.Naming.HeadersJSON
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	return base
}
