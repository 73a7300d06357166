package params

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestMapLookup(t *testing.T) {
	m := Map{"MAPS_API_KEY": "abc"}

	if v, ok := m.Lookup("MAPS_API_KEY"); !ok || v != "abc" {
		t.Fatalf("expected abc, got %q (present=%v)", v, ok)
	}
	if _, ok := m.Lookup("maps_api_key"); ok {
		t.Fatalf("lookup must be case sensitive")
	}
	if _, ok := None.Lookup("MAPS_API_KEY"); ok {
		t.Fatalf("None must never find a key")
	}
}

func TestMapMerge(t *testing.T) {
	base := Map{"A": "1", "B": "2"}
	merged := base.Merge(Map{"B": "override"}, Map{"C": "3"})

	if want := []string{"A", "B", "C"}; !slices.Equal(merged.Keys(), want) {
		t.Fatalf("expected keys %v, got %v", want, merged.Keys())
	}
	if merged["B"] != "override" {
		t.Fatalf("expected later map to win, got %q", merged["B"])
	}
	if base["B"] != "2" {
		t.Fatalf("merge must not mutate the receiver")
	}
}

func TestLookupFunc(t *testing.T) {
	var calls []string
	fn := LookupFunc(func(key string) (string, bool) {
		calls = append(calls, key)
		return "v", key == "X"
	})

	if _, ok := fn.Lookup("X"); !ok {
		t.Fatalf("expected X to be found")
	}
	if _, ok := fn.Lookup("Y"); ok {
		t.Fatalf("expected Y to be absent")
	}
	if want := []string{"X", "Y"}; !slices.Equal(calls, want) {
		t.Fatalf("unexpected calls: %v", calls)
	}
}

func TestLoadProperties(t *testing.T) {
	path := writeFile(t, "gradle.properties", ""+
		"# gradle settings\n"+
		"org.gradle.jvmargs=-Xmx4G\n"+
		"MAPS_API_KEY = from-gradle\n"+
		"KAKAO_NATIVE_APP_KEY: abc${notExpanded}\n")

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if m["MAPS_API_KEY"] != "from-gradle" {
		t.Fatalf("unexpected MAPS_API_KEY: %q", m["MAPS_API_KEY"])
	}
	if m["KAKAO_NATIVE_APP_KEY"] != "abc${notExpanded}" {
		t.Fatalf("expected literal value, got %q", m["KAKAO_NATIVE_APP_KEY"])
	}
	if m["org.gradle.jvmargs"] != "-Xmx4G" {
		t.Fatalf("unexpected jvmargs: %q", m["org.gradle.jvmargs"])
	}
}

func TestLoadPropertiesMissing(t *testing.T) {
	m, err := LoadProperties(filepath.Join(t.TempDir(), "gradle.properties"))
	if err != nil {
		t.Fatalf("expected missing properties file to be ignored, got %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "params.yaml", "MAPS_API_KEY: yaml-key\nBUILD_NUMBER: 42\n")

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if m["MAPS_API_KEY"] != "yaml-key" {
		t.Fatalf("unexpected MAPS_API_KEY: %q", m["MAPS_API_KEY"])
	}
	if m["BUILD_NUMBER"] != "42" {
		t.Fatalf("expected scalar to be read as string, got %q", m["BUILD_NUMBER"])
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	path := writeFile(t, "params.yml", "nested:\n  key: value\n")

	if _, err := LoadYAML(path); err == nil {
		t.Fatalf("expected error for nested YAML params")
	}
}

func TestLoadYAMLMissing(t *testing.T) {
	m, err := LoadYAML(filepath.Join(t.TempDir(), "params.yaml"))
	if err != nil {
		t.Fatalf("expected missing YAML file to be ignored, got %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestFromEnviron(t *testing.T) {
	environ := []string{
		"PATH=/usr/bin",
		"ORG_GRADLE_PROJECT_MAPS_API_KEY=env-key",
		"ORG_GRADLE_PROJECT_=ignored",
		"ORG_GRADLE_PROJECT_EQUALS=a=b",
		"malformed",
	}

	m := FromEnviron(environ, GradleEnvPrefix)
	if len(m) != 2 {
		t.Fatalf("expected 2 params, got %v", m)
	}
	if m["MAPS_API_KEY"] != "env-key" {
		t.Fatalf("unexpected MAPS_API_KEY: %q", m["MAPS_API_KEY"])
	}
	if m["EQUALS"] != "a=b" {
		t.Fatalf("unexpected EQUALS: %q", m["EQUALS"])
	}
}
