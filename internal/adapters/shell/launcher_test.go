package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conductor/internal/adapters/shell"
	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
	"go.trai.ch/conductor/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLauncher(t *testing.T) *shell.Launcher {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewLauncher(mockLogger)
}

// collect drains the output and waits for the process to exit.
func collect(t *testing.T, proc ports.Process) []string {
	t.Helper()
	var lines []string
	timeout := time.After(10 * time.Second)
	for {
		select {
		case line, ok := <-proc.Lines():
			if !ok {
				select {
				case <-proc.Done():
				case <-timeout:
					t.Fatal("process did not exit")
				}
				return lines
			}
			lines = append(lines, line)
		case <-timeout:
			t.Fatal("output did not close")
		}
	}
}

func TestLauncher_OrderedLines(t *testing.T) {
	l := newLauncher(t)

	proc, err := l.Launch(t.Context(), domain.ProcessSpec{
		Command: "echo line1; echo line2; echo line3",
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"line1", "line2", "line3"}, collect(t, proc))
	assert.NoError(t, proc.Err())
}

func TestLauncher_MergesStderr(t *testing.T) {
	l := newLauncher(t)

	proc, err := l.Launch(t.Context(), domain.ProcessSpec{
		Command: "echo out; echo err 1>&2; echo out2",
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"out", "err", "out2"}, collect(t, proc))
}

func TestLauncher_FragmentedAndTrailingOutput(t *testing.T) {
	l := newLauncher(t)

	proc, err := l.Launch(t.Context(), domain.ProcessSpec{
		Command: "printf 'part1'; sleep 0.1; printf 'part2\\r\\n'; printf 'tail'",
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"part1part2", "tail"}, collect(t, proc))
}

func TestLauncher_SilentPeriodsDoNotEndStream(t *testing.T) {
	l := newLauncher(t)

	proc, err := l.Launch(t.Context(), domain.ProcessSpec{
		Command: "echo before; sleep 1.2; echo after",
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"before", "after"}, collect(t, proc))
}

func TestLauncher_EnvAndDir(t *testing.T) {
	l := newLauncher(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), nil, 0o600))

	proc, err := l.Launch(t.Context(), domain.ProcessSpec{
		Command: "echo $GREETING; ls",
		Dir:     dir,
		Env:     []string{"GREETING=hello", "PATH=" + os.Getenv("PATH")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"hello", "marker.txt"}, collect(t, proc))
}

func TestLauncher_ExitFailure(t *testing.T) {
	l := newLauncher(t)

	proc, err := l.Launch(t.Context(), domain.ProcessSpec{Command: "exit 3", Dir: t.TempDir()})
	require.NoError(t, err)

	collect(t, proc)
	require.Error(t, proc.Err())
	assert.Contains(t, proc.Err().Error(), "process exited with failure")
}

func TestLauncher_MissingDirectory(t *testing.T) {
	l := newLauncher(t)

	_, err := l.Launch(t.Context(), domain.ProcessSpec{
		Command: "echo never",
		Dir:     filepath.Join(t.TempDir(), "missing"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start process")
}

func TestLauncher_KillTerminatesTree(t *testing.T) {
	l := newLauncher(t)

	proc, err := l.Launch(t.Context(), domain.ProcessSpec{
		Command: "echo ready; sleep 30 & sleep 30",
		Dir:     t.TempDir(),
	})
	require.NoError(t, err)

	select {
	case line := <-proc.Lines():
		assert.Equal(t, "ready", line)
	case <-time.After(5 * time.Second):
		t.Fatal("no output")
	}

	require.NoError(t, proc.Kill())
	require.NoError(t, proc.Kill(), "kill must be idempotent")

	collect(t, proc)
}

func TestLauncher_ContextCancelKills(t *testing.T) {
	l := newLauncher(t)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	proc, err := l.Launch(ctx, domain.ProcessSpec{Command: "sleep 30", Dir: t.TempDir()})
	require.NoError(t, err)

	cancel()
	collect(t, proc)
	require.Error(t, proc.Err())
}

func TestLauncher_KillAfterExit(t *testing.T) {
	l := newLauncher(t)

	proc, err := l.Launch(t.Context(), domain.ProcessSpec{Command: "true", Dir: t.TempDir()})
	require.NoError(t, err)

	collect(t, proc)
	assert.NoError(t, proc.Kill())
}
