package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/runger/editorlink/internal/dispatch"
)

// lineSource is the read side the watch loop consumes. *Channel satisfies
// it; tests drive the loop with in-memory implementations.
type lineSource interface {
	ReadLine() (string, error)
}

// Recorder persists open events. It is optional; a nil Recorder disables
// history.
type Recorder interface {
	Record(ctx context.Context, command, remotePath, localPath string) error
}

// Watcher owns one watch session: it bootstraps the remote agent and turns
// the streamed records into local editor invocations.
type Watcher struct {
	opts       Options
	dispatcher *dispatch.Dispatcher
	recorder   Recorder
	logger     *slog.Logger
}

// NewWatcher builds a Watcher from resolved profile options. The dispatcher
// is derived from the options' command table and mount root.
func NewWatcher(opts Options, recorder Recorder, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		opts:       opts,
		dispatcher: dispatch.New(opts.Commands, opts.PathToMount, logger),
		recorder:   recorder,
		logger:     logger,
	}
}

// Watch runs the session until the connection closes or a fatal error
// occurs. A clean remote EOF ends the session without error; there is no
// way to distinguish a deliberate remote shutdown from a dropped
// connection, so both end the watch quietly.
func (w *Watcher) Watch(ctx context.Context) error {
	script := RenderAgentScript(w.opts)
	w.logger.Debug("bootstrap script rendered", "bytes", len(script))

	ch, err := Open(ctx, w.opts.SSHArgs)
	if err != nil {
		return fmt.Errorf("open ssh channel: %w", err)
	}
	defer ch.Close()

	w.logger.Info("session started",
		"ssh_args", w.opts.SSHArgs,
		"command_name", w.opts.CommandName,
		"token", w.opts.Token)

	if err := ch.Send(script); err != nil {
		return err
	}
	if err := ch.CloseWrite(); err != nil {
		return fmt.Errorf("close write side: %w", err)
	}

	return w.run(ctx, ch)
}

// run consumes records from src until EOF or a fatal dispatch error.
func (w *Watcher) run(ctx context.Context, src lineSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := src.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				w.logger.Info("session ended")
				return nil
			}
			return fmt.Errorf("read watch stream: %w", err)
		}

		if line == "" || strings.HasPrefix(line, "#") {
			// Blank lines and the session sentinel carry no record.
			continue
		}

		command, remotePath, ok := strings.Cut(line, "|")
		if !ok {
			w.logger.Warn("malformed record", "line", line)
			continue
		}
		w.logger.Debug("record received", "command", command, "remote_path", remotePath)

		if err := w.handle(ctx, command, remotePath); err != nil {
			return err
		}
	}
}

// handle dispatches one record. Spawn failures are logged and swallowed;
// an unsupported command is fatal.
func (w *Watcher) handle(ctx context.Context, command, remotePath string) error {
	localPath := w.dispatcher.Translate(remotePath)

	if err := w.dispatcher.Dispatch(command, remotePath); err != nil {
		var spawnErr *dispatch.SpawnError
		if errors.As(err, &spawnErr) {
			w.logger.Warn("handler failed to start", "err", spawnErr)
			return nil
		}
		return err
	}

	if w.recorder != nil {
		if err := w.recorder.Record(ctx, command, remotePath, localPath); err != nil {
			w.logger.Warn("history write failed", "err", err)
		}
	}
	return nil
}
