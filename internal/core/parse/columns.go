package parse

import "strings"

// NormalizeColumnName lowercases and replaces spaces and slashes with
// underscores. Callers supply additional literal substring replacements,
// applied after the generic normalization.
func NormalizeColumnName(name string, replacements map[string]string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	for old, repl := range replacements {
		s = strings.ReplaceAll(s, old, repl)
	}
	return s
}
