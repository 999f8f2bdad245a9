package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// syncBuffer is a bytes.Buffer safe for the watch goroutine and the test to
// share.
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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_WatchRerunsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeFile(t, t.TempDir(), "plan.yaml", passingPlan)

	stdout := &syncBuffer{}
	stderr := &syncBuffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"run", "--watch", "--debounce", "20ms", path})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	reports := func() int { return strings.Count(stdout.String(), "Numbers Test Suite") }

	require.Eventually(t, func() bool { return reports() == 1 }, 5*time.Second, 10*time.Millisecond)

	// Keep saving until the watcher is up and a re-run lands.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(passingPlan), 0644)
		return reports() >= 2
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	assert.True(t, strings.HasPrefix(stdout.String(), passingReport+passingReport))
}

func TestRun_WatchKeepsGoingAfterFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeFile(t, t.TempDir(), "plan.yaml", failingPlan)

	stdout := &syncBuffer{}
	stderr := &syncBuffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"run", "--watch", "--debounce", "20ms", path})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "✗ 1 of 2 case(s) failed")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRun_WatchStopsOnMissingPlan(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, _, err := execute(t, "run", "--watch", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPlanWatcher_CollapsesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeFile(t, t.TempDir(), "plan.yaml", passingPlan)
	w, err := newPlanWatcher([]string{path}, 100*time.Millisecond, discardLogger())
	require.NoError(t, err)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func() { calls.Add(1) }) }()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(passingPlan), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst of saves runs once")

	cancel()
	require.NoError(t, <-done)
}

func TestPlanWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := writeFile(t, dir, "plan.yaml", passingPlan)
	w, err := newPlanWatcher([]string{path}, 10*time.Millisecond, discardLogger())
	require.NoError(t, err)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func() { calls.Add(1) }) }()

	writeFile(t, dir, "notes.txt", "unrelated")
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load())

	cancel()
	require.NoError(t, <-done)
}

func TestPlanWatcher_MissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := newPlanWatcher([]string{filepath.Join(t.TempDir(), "gone", "plan.yaml")}, time.Millisecond, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
}
