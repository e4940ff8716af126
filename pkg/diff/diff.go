// Package diff provides unified diff generation.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

// Unified generates a unified diff between oldText and newText, labelling
// both sides with filename. Returns an empty string if the inputs are
// identical.
func Unified(filename, oldText, newText string) string {
	return Labeled("a/"+filename, "b/"+filename, oldText, newText)
}

// Labeled is Unified with explicit labels for the --- and +++ headers.
func Labeled(oldLabel, newLabel, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	edits := lineEdits(oldText, newText)
	spans := hunkSpans(edits)
	if len(spans) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", oldLabel, newLabel)
	for _, sp := range spans {
		writeHunk(&b, edits[sp.from:sp.to])
	}
	return b.String()
}

// splitLines splits text into lines, preserving the trailing newline
// behavior. An empty string produces zero lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	// SplitAfter leaves an empty trailing element when s ends with \n.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type editKind byte

const (
	editEqual  editKind = ' '
	editInsert editKind = '+'
	editDelete editKind = '-'
)

// edit is one line of the edit script. oldPos and newPos are the cursors in
// each text when the line is reached, so an insert still knows where it
// lands in the old text.
type edit struct {
	kind   editKind
	oldPos int
	newPos int
	line   string
}

// lineEdits computes a line-level edit script. Lines are mapped to single
// runes so diffmatchpatch diffs whole lines, then expanded back.
func lineEdits(oldText, newText string) []edit {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var edits []edit
	oldPos, newPos := 0, 0
	for _, d := range diffs {
		kind := editEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = editInsert
		case diffmatchpatch.DiffDelete:
			kind = editDelete
		}
		for _, line := range splitLines(d.Text) {
			edits = append(edits, edit{kind: kind, oldPos: oldPos, newPos: newPos, line: line})
			if kind != editInsert {
				oldPos++
			}
			if kind != editDelete {
				newPos++
			}
		}
	}
	return edits
}

// span is the half-open range edits[from:to] printed as one hunk.
type span struct{ from, to int }

// hunkSpans walks the edit script once, opening a span at each change that
// is too far from the previous one to share context with it.
func hunkSpans(edits []edit) []span {
	var spans []span
	last := -1
	for i, e := range edits {
		if e.kind == editEqual {
			continue
		}
		if last < 0 || i-last > 2*contextLines {
			if last >= 0 {
				spans[len(spans)-1].to = min(last+contextLines+1, len(edits))
			}
			spans = append(spans, span{from: max(i-contextLines, 0)})
		}
		last = i
	}
	if last >= 0 {
		spans[len(spans)-1].to = min(last+contextLines+1, len(edits))
	}
	return spans
}

// writeHunk writes one @@ header followed by its lines. The header counts
// are only known after the body is built.
func writeHunk(b *strings.Builder, edits []edit) {
	var body strings.Builder
	oldCount, newCount := 0, 0
	for _, e := range edits {
		if e.kind != editInsert {
			oldCount++
		}
		if e.kind != editDelete {
			newCount++
		}
		body.WriteByte(byte(e.kind))
		body.WriteString(e.line)
		if !strings.HasSuffix(e.line, "\n") {
			body.WriteByte('\n')
		}
	}

	first := edits[0]
	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", first.oldPos+1, oldCount, first.newPos+1, newCount)
	b.WriteString(body.String())
}
