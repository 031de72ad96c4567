// Package strings holds small helpers for comma lists and token sets.
package strings

import (
	"strings"
)

// SplitList splits a comma separated value into trimmed, unique entries.
// Empty entries are dropped and first-seen order is kept.
func SplitList(raw string) []string {
	return unique(strings.Split(raw, ","), strings.TrimSpace)
}

// UniqueFold returns values lower-cased and trimmed with repeats removed.
func UniqueFold(values []string) []string {
	return unique(values, func(v string) string {
		return strings.ToLower(strings.TrimSpace(v))
	})
}

func unique(values []string, normalize func(string) string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = normalize(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
