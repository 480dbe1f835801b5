package notation

// ChangeKind tells whether a line was added or removed.
type ChangeKind string

const (
	Added   ChangeKind = "added"
	Removed ChangeKind = "removed"
)

// Change is one differing line. Line is 1-based in the text the line comes
// from: the new text for Added, the old text for Removed.
type Change struct {
	Kind    ChangeKind
	Line    int
	Content string
}

// Diff compares trimmed lines of old and new as sets, ignoring blank lines
// and indentation. Added lines come first in new-text order, then removed
// lines in old-text order. Moving a line is not a change.
func Diff(old, new string) []Change {
	oldLines, newLines := splitLines(old), splitLines(new)
	inOld := lineSet(oldLines)
	inNew := lineSet(newLines)

	var changes []Change
	for i, l := range newLines {
		if l != "" && !inOld[l] {
			changes = append(changes, Change{Kind: Added, Line: i + 1, Content: l})
		}
	}
	for i, l := range oldLines {
		if l != "" && !inNew[l] {
			changes = append(changes, Change{Kind: Removed, Line: i + 1, Content: l})
		}
	}
	return changes
}

func lineSet(lines []string) map[string]bool {
	set := make(map[string]bool, len(lines))
	for _, l := range lines {
		set[l] = true
	}
	return set
}
