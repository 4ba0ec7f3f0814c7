package resource

import (
	"sort"
	"strings"
)

// matchesSearch reports whether any field contains the query,
// case-insensitively. An empty query matches everything.
func matchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// sortByKey orders items ascending by a case-insensitive comparison of
// the key, in place. Missing values sort as the empty string.
func sortByKey[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(key(items[i])) < strings.ToLower(key(items[j]))
	})
}
