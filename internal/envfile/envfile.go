// Package envfile reads dotenv-style key/value files.
//
// The format is deliberately small: one KEY=VALUE pair per line, blank lines
// and lines starting with '#' are ignored, the first '=' separates key from
// value and both sides are trimmed. There is no quoting, escaping, variable
// expansion or "export" prefix. Lines that cannot be parsed are skipped rather
// than rejected.
package envfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

const commentMarker = "#"

// Source is the key/value mapping read from an environment file.
type Source map[string]string

// Lookup returns the value stored for key and whether the key was present.
func (s Source) Lookup(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Report describes how a file was read.
type Report struct {
	Path    string
	Exists  bool
	Entries int
	// Skipped holds the 1-based line numbers of lines that were neither
	// blank, comments nor valid pairs.
	Skipped []int
}

// Load reads the file at path. A missing file yields an empty Source and no
// error; any other read failure is returned.
func Load(path string) (Source, error) {
	src, _, err := Read(path)
	return src, err
}

// Read is Load with a Report of what was parsed.
func Read(path string) (Source, Report, error) {
	report := Report{Path: path}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Source{}, report, nil
	}
	if err != nil {
		return nil, report, fmt.Errorf("open env file %s: %w", path, err)
	}
	defer f.Close()

	report.Exists = true
	src, skipped, err := parse(f)
	if err != nil {
		return nil, report, fmt.Errorf("read env file %s: %w", path, err)
	}
	report.Entries = len(src)
	report.Skipped = skipped
	return src, report, nil
}

// Parse reads pairs from r. Later occurrences of a key overwrite earlier ones.
func Parse(r io.Reader) (Source, error) {
	src, _, err := parse(r)
	return src, err
}

func parse(r io.Reader) (Source, []int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	src := make(Source)
	var skipped []int
	for i, line := range splitLines(string(data)) {
		key, value, ok, ignored := parseLine(line)
		switch {
		case ok:
			src[key] = value
		case !ignored:
			skipped = append(skipped, i+1)
		}
	}
	return src, skipped, nil
}

// splitLines breaks s on "\r\n", "\n" and a lone "\r". Lines have no length
// limit.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// parseLine splits a single line. ignored reports blank and comment lines,
// which are expected and not counted as malformed.
func parseLine(raw string) (key, value string, ok, ignored bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, commentMarker) {
		return "", "", false, true
	}

	k, v, found := strings.Cut(line, "=")
	if !found {
		return "", "", false, false
	}
	k = strings.TrimSpace(k)
	if k == "" {
		return "", "", false, false
	}
	return k, strings.TrimSpace(v), true, false
}
