package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchRerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "A.kt"), ordered)
	cfgPath := writeFile(t, filepath.Join(t.TempDir(), "ktstyle.yml"), classOrderingOn)

	var stdout syncBuffer
	opts := &Options{
		Paths:       []string{dir},
		ConfigPaths: []string{cfgPath},
		Debounce:    20 * time.Millisecond,
		Stdout:      &stdout,
		Stderr:      &bytes.Buffer{},
		Logger:      quietLogger(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, opts) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "0 findings in 1 files\n")
	}, 5*time.Second, 10*time.Millisecond)

	writeFile(t, path, misordered)

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "1 finding in 1 files\n")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchRerunsOnDiscoveredConfig(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "A.kt"), misordered)
	cfgDir := t.TempDir()

	var stdout syncBuffer
	opts := &Options{
		Paths:    []string{src},
		Dir:      cfgDir,
		Debounce: 20 * time.Millisecond,
		Stdout:   &stdout,
		Stderr:   &bytes.Buffer{},
		Logger:   quietLogger(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, opts) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "0 findings in 1 files\n")
	}, 5*time.Second, 10*time.Millisecond)

	writeFile(t, filepath.Join(cfgDir, "ktstyle.yml"), classOrderingOn)

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "1 finding in 1 files\n")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestConfigDirs(t *testing.T) {
	assert.Equal(t, []string{"/etc/ktstyle", "conf"},
		configDirs(&Options{ConfigPaths: []string{"/etc/ktstyle/a.yml", "conf/b.yml"}, Dir: "/ignored"}))
	assert.Equal(t, []string{"/work"}, configDirs(&Options{Dir: "/work"}))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{wd}, configDirs(&Options{}))
}

func TestWatchMissingPath(t *testing.T) {
	err := Watch(context.Background(), &Options{
		Paths:  []string{"/nonexistent/path"},
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
		Logger: quietLogger(),
	})
	require.Error(t, err)
}
