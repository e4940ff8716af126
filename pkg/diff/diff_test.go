package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedIdentical(t *testing.T) {
	assert.Empty(t, Unified("A.kt", "hello\n", "hello\n"))
}

func TestUnifiedEmptyInputs(t *testing.T) {
	tests := []struct {
		name         string
		old, updated string
		wantDiff     bool
	}{
		{"both empty", "", "", false},
		{"old empty", "", "hello\n", true},
		{"new empty", "hello\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Unified("A.kt", tt.old, tt.updated)
			assert.Equal(t, tt.wantDiff, result != "", "diff=%q", result)
		})
	}
}

func TestUnifiedExactOutput(t *testing.T) {
	old := "a\nb\nc\n"
	updated := "a\nx\nc\n"

	want := "--- a/A.kt\n" +
		"+++ b/A.kt\n" +
		"@@ -1,3 +1,3 @@\n" +
		" a\n" +
		"-b\n" +
		"+x\n" +
		" c\n"
	assert.Equal(t, want, Unified("A.kt", old, updated))
}

func TestUnifiedAddition(t *testing.T) {
	result := Unified("A.kt", "line1\nline2\n", "line1\nline2\nline3\n")

	assert.Contains(t, result, "--- a/A.kt\n")
	assert.Contains(t, result, "+++ b/A.kt\n")
	assert.Contains(t, result, "+line3\n")
	assert.Contains(t, result, "@@ -1,2 +1,3 @@\n")
}

func TestUnifiedDeletion(t *testing.T) {
	result := Unified("A.kt", "line1\nline2\nline3\n", "line1\nline3\n")
	assert.Contains(t, result, "-line2\n")
}

func TestUnifiedMissingFinalNewline(t *testing.T) {
	result := Unified("A.kt", "val x = 1", "val x = 1\n")
	assert.Contains(t, result, "-val x = 1\n")
	assert.Contains(t, result, "+val x = 1\n")
}

func TestLabeled(t *testing.T) {
	result := Labeled("default", "effective", "a: 1\n", "a: 2\n")
	assert.True(t, strings.HasPrefix(result, "--- default\n+++ effective\n"), result)
	assert.Contains(t, result, "-a: 1\n+a: 2\n")
}

func TestUnifiedLargeFile(t *testing.T) {
	oldLines := make([]string, 0, 1000)
	newLines := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		oldLines = append(oldLines, fmt.Sprintf("line %d\n", i))
		newLines = append(newLines, fmt.Sprintf("line %d\n", i))
	}
	newLines[500] = "changed line 500\n"
	newLines[999] = "changed line 999\n"

	result := Unified("Large.kt", strings.Join(oldLines, ""), strings.Join(newLines, ""))

	assert.Contains(t, result, "-line 500\n+changed line 500\n")
	assert.Contains(t, result, "+changed line 999\n")
	assert.Equal(t, 2, strings.Count(result, "@@ -"), "expected two separate hunks")
}

func TestUnifiedContextLines(t *testing.T) {
	lines := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		lines = append(lines, fmt.Sprintf("line%02d\n", i))
	}
	old := strings.Join(lines, "")

	newLines := make([]string, len(lines))
	copy(newLines, lines)
	newLines[10] = "CHANGED\n"
	updated := strings.Join(newLines, "")

	result := Unified("A.kt", old, updated)

	assert.Contains(t, result, "@@ -8,7 +8,7 @@\n")
	assert.Contains(t, result, " line07\n")
	assert.Contains(t, result, " line13\n")
	assert.NotContains(t, result, "line06")
	assert.NotContains(t, result, "line14")
}

func TestUnifiedHunkGrouping(t *testing.T) {
	lines := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		lines = append(lines, fmt.Sprintf("line%02d\n", i))
	}
	old := strings.Join(lines, "")

	change := func(idx ...int) string {
		out := make([]string, len(lines))
		copy(out, lines)
		for _, i := range idx {
			out[i] = "CHANGED\n"
		}
		return strings.Join(out, "")
	}

	tests := []struct {
		name    string
		updated string
		headers []string
	}{
		{"shared context", change(5, 11), []string{"@@ -3,13 +3,13 @@\n"}},
		{"separate", change(5, 13), []string{"@@ -3,7 +3,7 @@\n", "@@ -11,7 +11,7 @@\n"}},
		{"first line", change(0), []string{"@@ -1,4 +1,4 @@\n"}},
		{"last line", change(19), []string{"@@ -17,4 +17,4 @@\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Unified("A.kt", old, tt.updated)
			assert.Equal(t, len(tt.headers), strings.Count(result, "@@ -"), result)
			for _, h := range tt.headers {
				assert.Contains(t, result, h)
			}
		})
	}
}

func TestUnifiedFromEmpty(t *testing.T) {
	assert.Equal(t, "--- a/A.kt\n+++ b/A.kt\n@@ -1,0 +1,2 @@\n+a\n+b\n", Unified("A.kt", "", "a\nb\n"))
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"one line with newline", "hello\n", 1},
		{"one line no newline", "hello", 1},
		{"two lines", "a\nb\n", 2},
		{"trailing blank", "a\n\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, splitLines(tt.input), tt.want, "splitLines(%q)", tt.input)
		})
	}
}
