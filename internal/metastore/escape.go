package metastore

import "strings"

// EscapeVars rewrites KEY=value lines to KEY='value' so a caller can safely
// re-evaluate them through its variable-assignment mechanism. Lines without
// a separator pass through unchanged. Embedded single quotes in the value
// are not escaped; a value containing one breaks the quoting at the
// consumer. Known limitation, kept for output compatibility.
func EscapeVars(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			out = append(out, line)
			continue
		}
		out = append(out, key+"='"+value+"'")
	}
	return out
}
