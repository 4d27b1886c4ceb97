package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runger/editorlink/internal/config"
	"github.com/runger/editorlink/internal/logging"
	"github.com/runger/editorlink/internal/session"
	"github.com/runger/editorlink/internal/storage"
)

var watchNoHistory bool

var watchCmd = &cobra.Command{
	Use:   "watch <profile>",
	Short: "Open a session to a host and watch for edit requests",
	Long: `Open a session to a configured host and watch for edit requests.

The session connects over ssh using the profile's connection options,
installs the remote helper command, then blocks until the connection
closes. Each remote helper invocation opens the file locally through
the mounted remote filesystem.

Examples:
  editorlink watch devbox         # Watch the "devbox" profile
  editorlink watch devbox --no-history`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoHistory, "no-history", false, "Do not record opened files in the history database")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	resolved, err := cfg.Resolve(args[0])
	if err != nil {
		return err
	}

	logger := logging.NewFromEnv(resolved.Verbose)

	var recorder session.Recorder
	if !watchNoHistory {
		paths := config.DefaultPaths()
		store, err := storage.NewSQLiteStore(paths.DatabaseFile())
		if err != nil {
			// History is best-effort; the session still runs without it.
			logger.Warn("history database unavailable", "err", err)
		} else {
			defer store.Close()
			recorder = &historyRecorder{store: store, profile: resolved.Name}
		}
	}

	watcher := session.NewWatcher(session.Options{
		SSHArgs:         resolved.SSHArgs,
		PathToMount:     resolved.PathToMount,
		MountRelativeTo: resolved.MountRelativeTo,
		CommandName:     resolved.EditorCommandName,
		TempDir:         resolved.CustomTempDir,
		Token:           resolved.SessionToken,
		Commands:        resolved.Commands,
	}, recorder, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watcher.Watch(ctx); err != nil {
		if ctx.Err() != nil {
			// Interrupted by the user; not a failure.
			return nil
		}
		return fmt.Errorf("watch %s: %w", resolved.Name, err)
	}
	return nil
}

// historyRecorder adapts the storage layer to the session's Recorder.
type historyRecorder struct {
	store   *storage.SQLiteStore
	profile string
}

func (h *historyRecorder) Record(ctx context.Context, command, remotePath, localPath string) error {
	return h.store.RecordOpen(ctx, &storage.Open{
		Profile:    h.profile,
		Command:    command,
		RemotePath: remotePath,
		LocalPath:  localPath,
	})
}
