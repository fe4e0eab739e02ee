// Package filter selects reviewable files from comma-separated glob
// patterns, e.g. "*.go,internal/**/*.go,!vendor/*".
package filter

import (
	"path/filepath"
	"strings"
)

// Filter holds parsed include and exclude patterns. The zero value (and
// an empty spec) matches everything.
type Filter struct {
	includes []string
	excludes []string
}

// New parses a comma-separated pattern spec. Patterns prefixed with "!"
// exclude; the rest include. With no include patterns every path is a
// candidate, excludes still apply.
func New(spec string) *Filter {
	f := &Filter{}
	for _, raw := range strings.Split(spec, ",") {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "!") {
			f.excludes = append(f.excludes, strings.TrimPrefix(p, "!"))
		} else {
			f.includes = append(f.includes, p)
		}
	}
	return f
}

// Match reports whether path passes the filter.
func (f *Filter) Match(path string) bool {
	for _, p := range f.excludes {
		if matchGlob(p, path) {
			return false
		}
	}
	if len(f.includes) == 0 {
		return true
	}
	for _, p := range f.includes {
		if matchGlob(p, path) {
			return true
		}
	}
	return false
}

// matchGlob extends filepath.Match with the forms users actually write:
// a "**/" prefix matches at any depth, a bare extension pattern matches
// the base name, and a trailing "/*" matches the whole subtree.
func matchGlob(pattern, path string) bool {
	if ok, _ := filepath.Match(pattern, path); ok {
		return true
	}

	if rest, found := strings.CutPrefix(pattern, "**/"); found {
		segs := strings.Split(path, "/")
		for i := range segs {
			if ok, _ := filepath.Match(rest, strings.Join(segs[i:], "/")); ok {
				return true
			}
		}
	}

	if !strings.Contains(pattern, "/") {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}

	if prefix, found := strings.CutSuffix(pattern, "/*"); found {
		if strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	return false
}
