// Package params provides the build-parameter source: a secondary key/value
// channel supplied by the invoking build tool. Values are looked up by exact
// name through the Lookup interface so resolution never touches ambient state.
package params

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// GradleEnvPrefix marks environment variables that Gradle exposes as project
// properties (ORG_GRADLE_PROJECT_foo becomes property foo).
const GradleEnvPrefix = "ORG_GRADLE_PROJECT_"

// Lookup resolves a build parameter by exact name.
type Lookup interface {
	Lookup(key string) (string, bool)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(key string) (string, bool)

// Lookup implements Lookup.
func (f LookupFunc) Lookup(key string) (string, bool) {
	return f(key)
}

// None is a Lookup that never finds anything.
var None Lookup = Map(nil)

// Map is an in-memory Lookup.
type Map map[string]string

// Lookup implements Lookup.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Merge returns a new Map holding m overlaid by each of others in order.
func (m Map) Merge(others ...Map) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, other := range others {
		for k, v := range other {
			out[k] = v
		}
	}
	return out
}

// Keys returns the parameter names in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadFile reads a parameter file, choosing the parser from the extension:
// .yaml and .yml are read as YAML, anything else as Java properties
// (gradle.properties). Missing files yield an empty Map.
func LoadFile(path string) (Map, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return LoadProperties(path)
	}
}

// LoadProperties reads a Java properties file. Property expansion is disabled
// so values are taken literally.
func LoadProperties(path string) (Map, error) {
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
		IgnoreMissing:    true,
	}
	p, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load properties %s: %w", path, err)
	}

	out := make(Map, p.Len())
	for _, key := range p.Keys() {
		if v, ok := p.Get(key); ok {
			out[key] = v
		}
	}
	return out, nil
}

// LoadYAML reads a flat YAML mapping of parameter names to scalar values.
func LoadYAML(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Map{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML params %s: %w", path, err)
	}

	out := make(Map, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out, nil
}

// FromEnviron collects KEY=VALUE pairs whose key carries prefix, with the
// prefix stripped. environ is typically os.Environ().
func FromEnviron(environ []string, prefix string) Map {
	out := make(Map)
	for _, pair := range environ {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, found := strings.CutPrefix(k, prefix)
		if !found || name == "" {
			continue
		}
		out[name] = v
	}
	return out
}
