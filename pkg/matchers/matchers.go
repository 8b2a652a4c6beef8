// Package matchers decides which directory entries are left out of a scan.
//
// Patterns follow three conventions:
//   - a trailing "/" matches directories only ("cache/")
//   - a pattern containing "/" is matched against the path relative to the
//     root of the scanned tree ("plugins/**/*.log")
//   - anything else is matched against the entry's base name ("*.swp")
//
// Globbing is provided by doublestar, so "**" crosses directory boundaries.
package matchers

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// Ignore holds a validated set of ignore patterns. The zero value and a nil
// *Ignore match nothing.
type Ignore struct {
	patterns []string
}

// NewIgnore validates patterns and returns a matcher for them
func NewIgnore(patterns ...[]string) (*Ignore, error) {
	m := &Ignore{}
	for _, group := range patterns {
		for _, p := range group {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if !doublestar.ValidatePattern(strings.TrimSuffix(p, "/")) {
				return nil, errors.Newf(errors.ErrInvalidInput, "invalid ignore pattern %q", p).
					WithDetail("pattern", p)
			}
			m.patterns = append(m.patterns, p)
		}
	}
	return m, nil
}

// Patterns returns the patterns in the order they were given
func (m *Ignore) Patterns() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.patterns...)
}

// Empty reports whether the matcher has no patterns
func (m *Ignore) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// Match reports whether the entry at rel (relative to the scan root) should
// be skipped. isDir tells whether the entry is a directory.
func (m *Ignore) Match(rel string, isDir bool) bool {
	if m.Empty() {
		return false
	}

	rel = filepath.ToSlash(rel)
	name := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		name = rel[i+1:]
	}

	for _, pattern := range m.patterns {
		if strings.HasSuffix(pattern, "/") {
			if !isDir {
				continue
			}
			pattern = strings.TrimSuffix(pattern, "/")
		}

		target := name
		if strings.Contains(pattern, "/") {
			target = rel
		}

		if ok, _ := doublestar.Match(pattern, target); ok {
			return true
		}
	}
	return false
}
