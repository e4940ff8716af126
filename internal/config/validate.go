package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/donaldgifford/ktstyle/internal/report"
)

// excludeSeparator joins keys in the compact path matched by exclude patterns.
const excludeSeparator = ">"

// defaultExcludes are property paths never reported as unknown: generic rule
// properties that the baseline does not spell out for every rule, and the
// tool's own "config" section.
var defaultExcludes = []string{
	`.*>excludes`,
	`.*>includes`,
	`.*>active`,
	`.*>severity`,
	`.*>.*>excludes`,
	`.*>.*>includes`,
	`.*>.*>active`,
	`.*>.*>severity`,
	`config>.*`,
}

// DefaultExcludes returns freshly compiled default exclude patterns.
func DefaultExcludes() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(defaultExcludes))
	for i, p := range defaultExcludes {
		out[i] = regexp.MustCompile(anchor(p))
	}
	return out
}

// CompileExcludes compiles user-supplied exclude patterns. Each pattern must
// match a whole property path, not a substring of it.
func CompileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(anchor(p))
		if err != nil {
			return nil, fmt.Errorf("compiling exclude pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Validate reports every key of s that does not exist in baseline at the same
// scope, unless its compact path (e.g. "style>ClassOrdering>foo") matches
// one of excludes. Keys only present in the baseline are never reported.
// Neither store is modified.
func (s *Store) Validate(baseline *Store, excludes []*regexp.Regexp) []report.Notification {
	if baseline == nil {
		baseline = Empty
	}
	return validateMapping(s.values, baseline.values, s.path, excludes, nil)
}

func validateMapping(user, baseline Mapping, path []string, excludes []*regexp.Regexp, out []report.Notification) []report.Notification {
	for _, key := range user.Keys() {
		keyPath := make([]string, len(path), len(path)+1)
		copy(keyPath, path)
		keyPath = append(keyPath, key)

		base, known := baseline[key]
		if !known {
			if !isExcluded(strings.Join(keyPath, excludeSeparator), excludes) {
				out = append(out, report.New(fmt.Sprintf(
					"Property '%s' is misspelled or does not exist.",
					strings.Join(keyPath, ScopeSeparator))))
			}
			continue
		}

		userMap, userIsMap := user[key].(Mapping)
		baseMap, baseIsMap := base.(Mapping)
		if userIsMap && baseIsMap {
			out = validateMapping(userMap, baseMap, keyPath, excludes, out)
		}
	}
	return out
}

func anchor(pattern string) string {
	return `^(?:` + pattern + `)$`
}

func isExcluded(path string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
