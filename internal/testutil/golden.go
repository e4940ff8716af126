// Package testutil provides shared test helpers for golden file testing.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/donaldgifford/ktstyle/pkg/diff"
)

// Update is a flag that, when set, regenerates golden files from current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

// Golden file names inside each case directory.
const (
	InputFile    = "input.kt"
	ExpectedFile = "expected.txt"
)

// AnalyzeFunc turns Kotlin source into the text compared against
// expected.txt, typically one "line:col Rule message" line per finding.
type AnalyzeFunc func(t *testing.T, input string) string

// RunGolden runs a single golden file test in the given directory.
// It reads input.kt, applies analyze, and compares against expected.txt.
func RunGolden(t *testing.T, dir string, analyze AnalyzeFunc) {
	t.Helper()

	inputPath := filepath.Join(dir, InputFile)
	expectedPath := filepath.Join(dir, ExpectedFile)

	inputBytes, err := os.ReadFile(inputPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", inputPath, err)
	}

	actual := analyze(t, string(inputBytes))

	if *Update {
		if err := os.WriteFile(expectedPath, []byte(actual), 0o644); err != nil {
			t.Fatalf("failed to update golden file %s: %v", expectedPath, err)
		}
		t.Logf("updated golden file: %s", expectedPath)
		return
	}

	expectedBytes, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", expectedPath, err)
	}

	if d := diff.Labeled("expected", "actual", string(expectedBytes), actual); d != "" {
		t.Errorf("output mismatch for %s (run with -update to accept):\n%s", dir, d)
	}
}

// RunGoldenDir walks all subdirectories under testdataDir and runs
// RunGolden for each as a subtest.
func RunGoldenDir(t *testing.T, testdataDir string, analyze AnalyzeFunc) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("failed to read testdata dir %s: %v", testdataDir, err)
	}

	ran := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ran++

		t.Run(entry.Name(), func(t *testing.T) {
			RunGolden(t, filepath.Join(testdataDir, entry.Name()), analyze)
		})
	}
	if ran == 0 {
		t.Fatalf("no golden cases found in %s", testdataDir)
	}
}
