// Package dispatch maps protocol records to local editor invocations.
package dispatch

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sys/execabs"
)

// UnsupportedCommandError reports a record whose command has no configured
// handler and no usable fallback. It aborts the session: an unknown command
// means the local and remote sides disagree about the protocol.
type UnsupportedCommandError struct {
	Command string
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("unsupported command %q", e.Command)
}

// SpawnError reports a handler that could not be started. It is non-fatal:
// the session keeps watching after logging it.
type SpawnError struct {
	Command string
	Argv    []string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q handler %v: %v", e.Command, e.Argv, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// startCommand launches a handler process; a package variable so tests can
// intercept spawns.
var startCommand = func(argv []string) error {
	cmd := execabs.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Fire and forget; reap in the background so the child never zombies.
	go func() { _ = cmd.Wait() }()
	return nil
}

// Dispatcher translates remote paths onto the local mount and launches the
// configured handler for each record.
type Dispatcher struct {
	commands  map[string][]string
	mountRoot string
	logger    *slog.Logger
}

// New builds a Dispatcher from the resolved profile's command table and
// mount root.
func New(commands map[string][]string, mountRoot string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		commands:  commands,
		mountRoot: mountRoot,
		logger:    logger,
	}
}

// Translate maps a remote absolute path onto the local mount root. The
// remote path is treated as relative to the profile's mount origin, so
// "/home/u/f.txt" under mount root "/mnt/box" becomes "/mnt/box/home/u/f.txt".
func (d *Dispatcher) Translate(remotePath string) string {
	return filepath.Join(d.mountRoot, remotePath)
}

// resolve picks the handler argv for a command, applying the fallback
// chain: newfile and dir fall back to the file handler when they have no
// entry of their own.
func (d *Dispatcher) resolve(command string) ([]string, bool) {
	if argv, ok := d.commands[command]; ok {
		return argv, true
	}
	if command == "newfile" || command == "dir" {
		if argv, ok := d.commands["file"]; ok {
			return argv, true
		}
	}
	return nil, false
}

// Dispatch launches the handler for one record. The translated local path is
// appended as the final argument of the configured argv. The handler is
// started without waiting for it to exit; editors routinely outlive the
// record that opened them.
func (d *Dispatcher) Dispatch(command, remotePath string) error {
	argv, ok := d.resolve(command)
	if !ok {
		return &UnsupportedCommandError{Command: command}
	}

	localPath := d.Translate(remotePath)
	full := make([]string, 0, len(argv)+1)
	full = append(full, argv...)
	full = append(full, localPath)

	d.logger.Debug("dispatching record",
		"command", command,
		"remote_path", remotePath,
		"local_path", localPath,
		"argv", full)

	if err := startCommand(full); err != nil {
		return &SpawnError{Command: command, Argv: full, Err: err}
	}
	return nil
}
