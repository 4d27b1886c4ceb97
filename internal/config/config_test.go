package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile_Missing(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Profiles)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "profiles: [not a map")
	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestResolve_UnknownProfile(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	_, err := cfg.Resolve("devbox")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "devbox")
}

func TestResolve_SystemDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
profiles:
  devbox:
    ssh_command_line_options: ["devbox"]
    path_to_mount: /Volumes/devbox
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	r, err := cfg.Resolve("devbox")
	require.NoError(t, err)

	assert.Equal(t, []string{"devbox"}, r.SSHArgs)
	assert.Equal(t, "/Volumes/devbox", r.PathToMount)
	assert.Equal(t, "/", r.MountRelativeTo)
	assert.Equal(t, "ec", r.EditorCommandName)
	assert.NotEmpty(t, r.SessionToken, "a token is generated when none is configured")
	assert.Equal(t, map[string][]string{"file": {"open"}}, r.Commands)
}

func TestResolve_DefaultsMergedUnderProfile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
defaults:
  editor_command_name: edit
  commands:
    file: ["code", "-w"]
profiles:
  devbox:
    ssh_command_line_options: ["-p", "2222", "devbox"]
    path_to_mount: /mnt/devbox
  staging:
    ssh_command_line_options: ["staging"]
    path_to_mount: /mnt/staging
    editor_command_name: se
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	dev, err := cfg.Resolve("devbox")
	require.NoError(t, err)
	assert.Equal(t, "edit", dev.EditorCommandName)
	assert.Equal(t, []string{"code", "-w"}, dev.Commands["file"])

	st, err := cfg.Resolve("staging")
	require.NoError(t, err)
	assert.Equal(t, "se", st.EditorCommandName, "profile overrides defaults")
}

func TestResolve_ExplicitCommandsReplaceWholesale(t *testing.T) {
	t.Parallel()

	// A configured table with no "file" entry must stay without one, so
	// unknown commands surface instead of silently falling back.
	path := writeConfig(t, `
profiles:
  devbox:
    ssh_command_line_options: ["devbox"]
    path_to_mount: /mnt/devbox
    commands:
      dir: ["open"]
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	r, err := cfg.Resolve("devbox")
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"dir": {"open"}}, r.Commands)
	_, hasFile := r.Commands["file"]
	assert.False(t, hasFile)
}

func TestResolve_ConfiguredTokenKept(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
profiles:
  devbox:
    ssh_command_line_options: ["devbox"]
    path_to_mount: /mnt/devbox
    session_token: fixed-token
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	r, err := cfg.Resolve("devbox")
	require.NoError(t, err)
	assert.Equal(t, "fixed-token", r.SessionToken)
}

func TestResolve_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing ssh options",
			yaml: `
profiles:
  devbox:
    path_to_mount: /mnt/devbox
`,
			wantErr: "ssh_command_line_options",
		},
		{
			name: "empty ssh arg",
			yaml: `
profiles:
  devbox:
    ssh_command_line_options: ["devbox", ""]
    path_to_mount: /mnt/devbox
`,
			wantErr: "empty strings",
		},
		{
			name: "missing mount",
			yaml: `
profiles:
  devbox:
    ssh_command_line_options: ["devbox"]
`,
			wantErr: "path_to_mount",
		},
		{
			name: "empty command template",
			yaml: `
profiles:
  devbox:
    ssh_command_line_options: ["devbox"]
    path_to_mount: /mnt/devbox
    commands:
      file: []
`,
			wantErr: "commands.file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromFile(writeConfig(t, tt.yaml))
			require.NoError(t, err)

			_, err = cfg.Resolve("devbox")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCommandTemplate_StringForm(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
profiles:
  devbox:
    ssh_command_line_options: ["devbox"]
    path_to_mount: /mnt/devbox
    commands:
      file: code -w --new-window
      dir: 'open -R'
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	r, err := cfg.Resolve("devbox")
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "-w", "--new-window"}, r.Commands["file"])
	assert.Equal(t, []string{"open", "-R"}, r.Commands["dir"])
}

func TestCommandTemplate_QuotedString(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
profiles:
  devbox:
    ssh_command_line_options: ["devbox"]
    path_to_mount: /mnt/devbox
    commands:
      file: 'open -a "Sublime Text"'
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	r, err := cfg.Resolve("devbox")
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "-a", "Sublime Text"}, r.Commands["file"])
}

func TestEnvOverride_Debug(t *testing.T) {
	t.Setenv("EDITORLINK_DEBUG", "1")

	path := writeConfig(t, `
profiles:
  devbox:
    ssh_command_line_options: ["devbox"]
    path_to_mount: /mnt/devbox
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	r, err := cfg.Resolve("devbox")
	require.NoError(t, err)
	assert.True(t, r.Verbose)
}

func TestProfileNames_Sorted(t *testing.T) {
	t.Parallel()

	cfg := &Config{Profiles: map[string]Profile{
		"zeta": {}, "alpha": {}, "mid": {},
	}}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, cfg.ProfileNames())
}
