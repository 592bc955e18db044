package probe

import (
	"regexp"
	"strings"
)

// tokenPattern matches one KEY="VALUE" token plus any immediately following
// separating whitespace.
var tokenPattern = regexp.MustCompile(`([A-Za-z0-9_]+)="([^"]*)"[ \t]*`)

// parseSimple re-tokenizes the legacy single-line grammar
//
//	path: KEY1="VAL1" KEY2="VAL2" ...
//
// into canonical lines. The leading "path: " prefix is stripped, then the
// first KEY="VALUE" token is repeatedly extracted from the remaining buffer,
// emitted as its own line and removed together with its trailing whitespace,
// until the buffer is exhausted. The parse is best-effort: a trailing
// fragment that never matches the token grammar is not emitted, and is
// returned as rest so the caller can report the drop.
func parseSimple(path, line string) (lines []string, rest string) {
	buf := line
	if r, ok := strings.CutPrefix(buf, path+": "); ok {
		buf = r
	} else if i := strings.Index(buf, ": "); i >= 0 {
		buf = buf[i+2:]
	}

	for buf != "" {
		loc := tokenPattern.FindStringSubmatchIndex(buf)
		if loc == nil {
			break
		}
		key := buf[loc[2]:loc[3]]
		value := buf[loc[4]:loc[5]]
		lines = append(lines, key+`="`+value+`"`)
		buf = buf[loc[1]:]
	}
	return lines, buf
}
