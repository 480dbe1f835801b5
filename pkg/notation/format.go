package notation

import "strings"

// Format normalises notation layout: lines are trimmed, blank lines
// dropped, the flowchart header is kept flush left and every line after it
// is indented by four spaces. Lines before any header are left unindented.
func Format(text string) string {
	var b strings.Builder
	indent := ""
	for _, line := range splitLines(text) {
		if line == "" {
			continue
		}
		if isHeader(line) {
			b.WriteString(line)
			b.WriteByte('\n')
			indent = "    "
			continue
		}
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
