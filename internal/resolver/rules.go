package resolver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	transformNone   = "none"
	transformPrefix = "prefix"
)

// rulesFile represents the YAML rules file structure.
type rulesFile struct {
	Placeholders []yamlRule `yaml:"placeholders"`
}

type yamlRule struct {
	Name      string        `yaml:"name"`
	Env       []string      `yaml:"env"`
	Param     string        `yaml:"param"`
	Default   string        `yaml:"default"`
	Transform yamlTransform `yaml:"transform"`
	Fallback  string        `yaml:"fallback"`
}

type yamlTransform struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

// LoadRules reads placeholder rules from a YAML file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes and validates YAML rule definitions.
func ParseRules(data []byte) ([]Rule, error) {
	var file rulesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRule, typeErr)
		}
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	rules := make([]Rule, 0, len(file.Placeholders))
	seen := make(map[string]struct{}, len(file.Placeholders))
	for i, yr := range file.Placeholders {
		if yr.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidRule, i)
		}
		if _, dup := seen[yr.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate placeholder %q", ErrInvalidRule, yr.Name)
		}
		seen[yr.Name] = struct{}{}

		rule := Rule{
			Name:     yr.Name,
			EnvKeys:  yr.Env,
			ParamKey: yr.Param,
			Default:  yr.Default,
			Fallback: yr.Fallback,
		}
		switch yr.Transform.Kind {
		case "", transformNone:
		case transformPrefix:
			rule.Transform = Prefix(yr.Transform.Value)
		default:
			return nil, fmt.Errorf("%w: placeholder %q has unknown transform %q", ErrInvalidRule, yr.Name, yr.Transform.Kind)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// MergeRules overlays overrides onto base. A rule whose name already exists
// replaces it in place; new names are appended in order.
func MergeRules(base, overrides []Rule) []Rule {
	out := make([]Rule, len(base))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, r := range out {
		index[r.Name] = i
	}
	for _, r := range overrides {
		if i, ok := index[r.Name]; ok {
			out[i] = r
			continue
		}
		index[r.Name] = len(out)
		out = append(out, r)
	}
	return out
}
