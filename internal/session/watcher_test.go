package session

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/editorlink/internal/dispatch"
)

// fakeSource replays scripted lines, then EOF.
type fakeSource struct {
	lines []string
}

func (f *fakeSource) ReadLine() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

// fakeRecorder collects recorded opens.
type fakeRecorder struct {
	commands []string
	locals   []string
}

func (f *fakeRecorder) Record(_ context.Context, command, _, localPath string) error {
	f.commands = append(f.commands, command)
	f.locals = append(f.locals, localPath)
	return nil
}

func newTestWatcher(commands map[string][]string, recorder Recorder) *Watcher {
	opts := testOptions()
	opts.Commands = commands
	return NewWatcher(opts, recorder, nil)
}

func TestWatcher_DispatchesRecords(t *testing.T) {
	rec := &fakeRecorder{}
	w := newTestWatcher(map[string][]string{
		"file": {"true"},
	}, rec)

	src := &fakeSource{lines: []string{
		"# editorlink session tok-123",
		"file|home/user/report.txt",
		"",
		"file|etc/hosts",
	}}

	err := w.run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, []string{"file", "file"}, rec.commands)
	assert.Equal(t, []string{
		"/Volumes/devbox/home/user/report.txt",
		"/Volumes/devbox/etc/hosts",
	}, rec.locals)
}

func TestWatcher_SplitsOnFirstDelimiterOnly(t *testing.T) {
	rec := &fakeRecorder{}
	w := newTestWatcher(map[string][]string{
		"file": {"true"},
	}, rec)

	src := &fakeSource{lines: []string{"file|odd|name|with|pipes.txt"}}

	err := w.run(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, rec.locals, 1)
	assert.Equal(t, "/Volumes/devbox/odd|name|with|pipes.txt", rec.locals[0])
}

func TestWatcher_DirFallsBackToFile(t *testing.T) {
	rec := &fakeRecorder{}
	w := newTestWatcher(map[string][]string{
		"file": {"true"},
	}, rec)

	src := &fakeSource{lines: []string{"dir|home/user/proj"}}

	err := w.run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, []string{"dir"}, rec.commands)
	assert.Equal(t, []string{"/Volumes/devbox/home/user/proj"}, rec.locals)
}

func TestWatcher_UnsupportedCommandIsFatal(t *testing.T) {
	w := newTestWatcher(map[string][]string{
		"file": {"true"},
	}, nil)

	src := &fakeSource{lines: []string{
		"weird|home/u/f",
		"file|home/u/after", // never reached
	}}

	err := w.run(context.Background(), src)
	var unsupported *dispatch.UnsupportedCommandError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "weird", unsupported.Command)
}

func TestWatcher_SpawnFailureIsNotFatal(t *testing.T) {
	rec := &fakeRecorder{}
	w := newTestWatcher(map[string][]string{
		"file": {"/nonexistent/editor-binary-xyz"},
	}, rec)

	src := &fakeSource{lines: []string{
		"file|home/u/one",
		"file|home/u/two",
	}}

	err := w.run(context.Background(), src)
	require.NoError(t, err)

	// Failed spawns are logged and skipped; nothing is recorded for them.
	assert.Empty(t, rec.commands)
}

func TestWatcher_MalformedLineSkipped(t *testing.T) {
	rec := &fakeRecorder{}
	w := newTestWatcher(map[string][]string{
		"file": {"true"},
	}, rec)

	src := &fakeSource{lines: []string{
		"no delimiter here",
		"file|home/u/ok",
	}}

	err := w.run(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"file"}, rec.commands)
}

func TestWatcher_ContextCancelStopsLoop(t *testing.T) {
	w := newTestWatcher(map[string][]string{
		"file": {"true"},
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.run(ctx, &fakeSource{lines: []string{"file|home/u/f"}})
	assert.ErrorIs(t, err, context.Canceled)
}
