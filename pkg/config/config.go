// Package config provides YAML and TOML configuration loading with environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Format is a supported document format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the decoder for filename by its extension. Anything that is
// not .toml is treated as YAML.
func FormatOf(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Decode unmarshals data in the given format into target as is.
func Decode[T any](format Format, data []byte, target *T) error {
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("decode toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("decode yaml: %w", err)
		}
	}
	return nil
}

// DecodeExpanded is Decode after expanding ${VAR} references in data.
func DecodeExpanded[T any](format Format, data []byte, target *T) error {
	return Decode(format, []byte(os.ExpandEnv(string(data))), target)
}

// Encode marshals v in the given format.
func Encode(format Format, v any) ([]byte, error) {
	switch format {
	case FormatTOML:
		out, err := toml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return out, nil
	default:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	}
}

// Load loads configuration from a YAML or TOML file with environment variable expansion.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := DecodeExpanded(FormatOf(filename), data, target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

// LoadWithDefaults loads configuration, keeping target untouched when
// filename does not exist and no default file is given.
func LoadWithDefaults[T any](filename, defaultFile string, target *T) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		if defaultFile != "" {
			return Load(defaultFile, target)
		}
		if validator, ok := any(target).(Validator); ok {
			return validator.Validate()
		}
		return nil
	}
	return Load(filename, target)
}
