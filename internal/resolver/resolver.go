// Package resolver computes manifest placeholder values from an environment
// file and build parameters, applying per-placeholder precedence, defaults
// and transforms. Resolution never fails: absence degrades to a default.
package resolver

import "github.com/eugenenazirov/manifest-placeholders/internal/params"

const (
	// MapsAPIKey is the placeholder holding the maps provider API key.
	MapsAPIKey = "MAPS_API_KEY"
	// KakaoScheme is the placeholder holding the Kakao login URI scheme.
	KakaoScheme = "KAKAO_SCHEME"

	kakaoNativeAppKey = "KAKAO_NATIVE_APP_KEY"
	kakaoSchemePrefix = "kakao"
)

// DefaultRules returns the built-in placeholder rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     MapsAPIKey,
			EnvKeys:  []string{"MAPS_API_KEY_ANDROID", "MAPS_API_KEY"},
			ParamKey: "MAPS_API_KEY",
			Default:  "",
		},
		{
			Name:      KakaoScheme,
			EnvKeys:   []string{kakaoNativeAppKey},
			ParamKey:  kakaoNativeAppKey,
			Transform: Prefix(kakaoSchemePrefix),
			Fallback:  kakaoSchemePrefix,
		},
	}
}

// Resolve returns the final value for a single rule.
func Resolve(rule Rule, env, build params.Lookup) string {
	return ResolveDetail(rule, env, build).Value
}

// ResolveDetail is Resolve with provenance. A key counts as found when it is
// present in a source, even with an empty value.
func ResolveDetail(rule Rule, env, build params.Lookup) Value {
	v := lookup(rule, env, build)
	if rule.Transform == nil {
		return v
	}
	if v.Value == "" {
		v.Value = rule.Fallback
		return v
	}
	v.Value = rule.Transform(v.Value)
	return v
}

func lookup(rule Rule, env, build params.Lookup) Value {
	if env != nil {
		for _, key := range rule.EnvKeys {
			if v, ok := env.Lookup(key); ok {
				return Value{Value: v, Origin: OriginEnvFile, Key: key}
			}
		}
	}
	if build != nil && rule.ParamKey != "" {
		if v, ok := build.Lookup(rule.ParamKey); ok {
			return Value{Value: v, Origin: OriginParam, Key: rule.ParamKey}
		}
	}
	return Value{Value: rule.Default, Origin: OriginDefault}
}

// ResolveAll runs every rule once. When two rules share a name the later one
// wins.
func ResolveAll(rules []Rule, env, build params.Lookup) Resolved {
	values := make(map[string]Value, len(rules))
	for _, rule := range rules {
		values[rule.Name] = ResolveDetail(rule, env, build)
	}
	return newResolved(values)
}
