package session

import (
	"embed"
)

//go:embed scripts/agent.sh
//go:embed scripts/helper.sh
var scriptAssets embed.FS

// Options carries the immutable per-session settings the core needs. It is
// built once from the resolved configuration profile and never mutated.
type Options struct {
	// SSHArgs are the arguments passed to the ssh invocation, e.g.
	// ["-p", "2222", "devbox"]. The trailing interpreter argument is
	// appended by the transport.
	SSHArgs []string

	// PathToMount is the local root where the remote filesystem is mounted.
	PathToMount string

	// MountRelativeTo is the remote directory the mount exposes ("/" by
	// default); paths on the wire are already relative to it.
	MountRelativeTo string

	// CommandName is the name the helper is installed under remotely.
	CommandName string

	// TempDir optionally overrides the remote temp directory used for the
	// watch log and stdin capture files.
	TempDir string

	// Token is the opaque session token used to verify helper installation.
	Token string

	// Commands maps a protocol command name to a local shell invocation
	// template; the translated path is appended as the final argument.
	Commands map[string][]string
}

// Placeholder names used by the embedded script assets.
const (
	placeholderCommandName = "COMMAND_NAME"
	placeholderToken       = "SESSION_TOKEN"
	placeholderTempDir     = "TEMP_DIR"
	placeholderMountPoint  = "MOUNT_POINT"
	placeholderHelperBody  = "HELPER_BODY"
)

// RenderAgentScript produces the bootstrap script for one session. The
// helper asset is rendered first, then embedded into the agent asset as an
// escaped shell string literal. The temp-dir placeholder renders to an empty
// substitution when no override is configured, so the scripts fall back to
// the remote system default.
func RenderAgentScript(opts Options) string {
	tempDir := ""
	if opts.TempDir != "" {
		tempDir = QuoteLiteral(opts.TempDir)
	}

	mountPoint := opts.MountRelativeTo
	if mountPoint == "" {
		mountPoint = "/"
	}

	helper := Render(mustAsset("scripts/helper.sh"), map[string]string{
		placeholderCommandName: opts.CommandName,
		placeholderToken:       opts.Token,
		placeholderTempDir:     tempDir,
		placeholderMountPoint:  QuoteLiteral(mountPoint),
	})

	return Render(mustAsset("scripts/agent.sh"), map[string]string{
		placeholderCommandName: opts.CommandName,
		placeholderToken:       opts.Token,
		placeholderTempDir:     tempDir,
		placeholderHelperBody:  QuoteLiteral(helper),
	})
}

func mustAsset(name string) string {
	data, err := scriptAssets.ReadFile(name)
	if err != nil {
		// The assets are compiled in; a missing one is a build defect.
		panic("session: missing embedded script asset " + name)
	}
	return string(data)
}
