package common

import "strings"

// IndexFold returns the index of the first item equal to target after trimming
// spaces and ignoring case, or -1.
func IndexFold(items []string, target string) int {
	target = strings.TrimSpace(target)
	for i, item := range items {
		if strings.EqualFold(strings.TrimSpace(item), target) {
			return i
		}
	}
	return -1
}

// HasAnyPrefix returns true if s starts with any of the prefixes, ignoring case.
func HasAnyPrefix(s string, prefixes ...string) bool {
	lower := strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
