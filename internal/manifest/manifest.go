// Package manifest publishes resolved placeholders to the manifest step,
// either by rendering a manifest template or by serialising the bindings in a
// format another tool can consume.
package manifest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/eugenenazirov/manifest-placeholders/internal/resolver"
)

var placeholderPattern = regexp.MustCompile(`\$\{([^{}\s]+)\}`)

// Placeholders returns the name to value binding for a resolved configuration.
func Placeholders(resolved resolver.Resolved) map[string]string {
	return resolved.Map()
}

// Render substitutes ${NAME} references in tmpl. Every reference must have a
// value; otherwise ErrUnknownPlaceholder is returned naming all missing names.
func Render(tmpl []byte, placeholders map[string]string) ([]byte, error) {
	missing := make(map[string]struct{})
	out := placeholderPattern.ReplaceAllFunc(tmpl, func(match []byte) []byte {
		name := string(match[2 : len(match)-1])
		value, ok := placeholders[name]
		if !ok {
			missing[name] = struct{}{}
			return match
		}
		return []byte(value)
	})

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlaceholder, strings.Join(names, ", "))
	}
	return out, nil
}

// References lists the distinct placeholder names used by tmpl, sorted.
func References(tmpl []byte) []string {
	seen := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllSubmatch(tmpl, -1) {
		seen[string(m[1])] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
