// Package confutil wraps YAML and TOML decoding to isolate the external
// dependencies. Callers pick a format by file extension and never import
// the parsers directly.
package confutil

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits config input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// Format identifies a config file syntax.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	ErrNilData           = errors.New("confutil: nil or empty data")
	ErrNilDestination    = errors.New("confutil: nil destination pointer")
	ErrInputTooLarge     = errors.New("confutil: input exceeds maximum size")
	ErrUnknownFields     = errors.New("confutil: unknown fields")
	ErrUnsupportedFormat = errors.New("confutil: unsupported format")
)

// Extensions lists recognized config file extensions in lookup order.
var Extensions = []string{".yaml", ".yml", ".toml"}

// FormatFor returns the format matching a file path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict decodes data in the given format, rejecting unknown fields.
func UnmarshalStrict(format Format, data []byte, v any) error {
	switch format {
	case FormatYAML:
		return UnmarshalYAMLStrict(data, v)
	case FormatTOML:
		return UnmarshalTOMLStrict(data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// UnmarshalYAMLStrict rejects unknown fields in YAML input.
func UnmarshalYAMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("confutil: %w", err)
	}
	return nil
}

// UnmarshalTOMLStrict rejects unknown keys in TOML input.
// TOML keys are matched against `toml` struct tags.
func UnmarshalTOMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	if err != nil {
		return fmt.Errorf("confutil: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: %s", ErrUnknownFields, strings.Join(keys, ", "))
	}
	return nil
}
