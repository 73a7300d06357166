package resolver

import "sort"

// Origin identifies which source supplied a resolved value.
type Origin string

const (
	OriginEnvFile Origin = "envfile"
	OriginParam   Origin = "param"
	OriginDefault Origin = "default"
)

// Transform turns a non-empty resolved value into its final form.
type Transform func(value string) string

// Prefix returns a Transform that prepends p.
func Prefix(p string) Transform {
	return func(value string) string {
		return p + value
	}
}

// Rule describes how a single placeholder is resolved.
//
// EnvKeys are consulted in order against the environment file, then ParamKey
// against the build parameters, then Default is used. When Transform is set
// it is applied to a non-empty result; an empty result yields Fallback.
type Rule struct {
	Name      string
	EnvKeys   []string
	ParamKey  string
	Default   string
	Transform Transform
	Fallback  string
}

// Value is a resolved placeholder together with where it came from.
type Value struct {
	Value  string
	Origin Origin
	// Key is the source key that matched; empty for defaults.
	Key string
}

// Resolved is the immutable outcome of one resolution pass.
type Resolved struct {
	values map[string]Value
}

func newResolved(values map[string]Value) Resolved {
	return Resolved{values: values}
}

// Get returns the final string for a placeholder name.
func (r Resolved) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v.Value, ok
}

// Detail returns the value and its provenance.
func (r Resolved) Detail(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the placeholder names in sorted order.
func (r Resolved) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the name to value mapping.
func (r Resolved) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for name, v := range r.values {
		out[name] = v.Value
	}
	return out
}

// Len reports the number of resolved placeholders.
func (r Resolved) Len() int {
	return len(r.values)
}
