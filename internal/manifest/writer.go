package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// Format selects how placeholders are serialised.
type Format string

const (
	FormatEnv        Format = "env"
	FormatProperties Format = "properties"
	FormatYAML       Format = "yaml"
	FormatJSON       Format = "json"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatEnv, FormatProperties, FormatYAML, FormatJSON}
}

// ParseFormat validates a format name.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
}

// Write serialises placeholders to w with keys in sorted order.
func Write(w io.Writer, format Format, placeholders map[string]string) error {
	switch format {
	case FormatEnv:
		return writeEnv(w, placeholders)
	case FormatProperties:
		return writeProperties(w, placeholders)
	case FormatYAML:
		return writeYAML(w, placeholders)
	case FormatJSON:
		return writeJSON(w, placeholders)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeEnv(w io.Writer, placeholders map[string]string) error {
	for _, k := range sortedKeys(placeholders) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, placeholders[k]); err != nil {
			return fmt.Errorf("write env: %w", err)
		}
	}
	return nil
}

func writeProperties(w io.Writer, placeholders map[string]string) error {
	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, k := range sortedKeys(placeholders) {
		if _, _, err := p.Set(k, placeholders[k]); err != nil {
			return fmt.Errorf("set property %s: %w", k, err)
		}
	}
	if _, err := p.Write(w, properties.UTF8); err != nil {
		return fmt.Errorf("write properties: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, placeholders map[string]string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(placeholders); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, placeholders map[string]string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(placeholders); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
