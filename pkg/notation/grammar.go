package notation

import (
	"regexp"
	"strings"
)

// Metadata comment keys.
const (
	keyProcedure        = "Procedure"
	keyType             = "Type"
	keyDescription      = "Description"
	keySectionReference = "Section_Reference"
	keyTextReference    = "Text_Reference"
)

// metadataKeys lists element metadata keys in the order they are emitted
// and checked.
var metadataKeys = []string{keyType, keyDescription, keySectionReference, keyTextReference}

const (
	labelExpr  = `[A-Za-z0-9_]+`
	quotedExpr = `"((?:[^"\\]|\\.)*)"`
)

var (
	headerRe   = regexp.MustCompile(`^(?:flowchart|graph)(?:\s+(\S+))?`)
	classDefRe = regexp.MustCompile(`^classDef\s`)
	commentRe  = regexp.MustCompile(`^%%\s*([A-Za-z_]+)\s*:\s*(.*)$`)

	// Lenient forms used by the decoder: trailing text is ignored, bracket
	// pairs need not match and content may be unquoted.
	looseNodeRe = regexp.MustCompile(`^(` + labelExpr + `)\s*(\[|\(\()\s*(?:` + quotedExpr + `|([^"\])]*))\s*(\]|\)\))(?::::(\w+))?`)
	looseEdgeRe = regexp.MustCompile(`^(` + labelExpr + `)\s*-->\s*(?:\|\s*(?:` + quotedExpr + `|([^|]*))\s*\|)?\s*(` + labelExpr + `)`)

	// Strict forms used by the checker.
	strictNodeRe = regexp.MustCompile(`^(` + labelExpr + `)(?:\[` + quotedExpr + `\]|\(\(` + quotedExpr + `\)\))(?::::(\w+))?$`)
	strictEdgeRe = regexp.MustCompile(`^(` + labelExpr + `)\s*-->\s*(?:\|(?:` + quotedExpr + `|[^|"]*)\|\s*)?(` + labelExpr + `)$`)

	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
	brRe      = regexp.MustCompile(`(?i)<br\s*/?>`)
)

var (
	escaper      = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	segEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;")
	segUnescaper = strings.NewReplacer("&lt;", "<", "&amp;", "&")
	flattener    = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
)

func escape(s string) string { return escaper.Replace(flatten(s)) }

// unescape reverses escape: a backslash keeps the character after it.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func flatten(s string) string { return flattener.Replace(s) }

// escapeSegment keeps <br> inside node content segments from reading as a
// separator.
func escapeSegment(s string) string { return segEscaper.Replace(s) }

func unescapeSegment(s string) string { return segUnescaper.Replace(s) }

// splitLines splits text on newlines and trims each line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

func isHeader(line string) bool {
	return strings.HasPrefix(line, "flowchart") || strings.HasPrefix(line, "graph ") || line == "graph"
}
