package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocumentFormat is the on-disk encoding of a settings document.
type DocumentFormat string

const (
	FormatYAML DocumentFormat = "yaml"
	FormatJSON DocumentFormat = "json"
)

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) DocumentFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a YAML or JSON settings document.
func Decode(data []byte) (*Settings, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("settings document is empty")
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

// Encode renders a settings document in the given format.
func Encode(s *Settings, format DocumentFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode settings as JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("failed to encode settings as YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode settings as YAML: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown settings format %q", format)
}

// LoadFromFile reads a settings document from a YAML or JSON file.
func LoadFromFile(filename string) (*Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Save writes a settings document, choosing the format from the extension.
func Save(filename string, s *Settings) error {
	data, err := Encode(s, FormatForPath(filename))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
