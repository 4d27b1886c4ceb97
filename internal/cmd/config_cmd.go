package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runger/editorlink/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect editorlink configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "Print the configuration, or one resolved profile",
	Long: `Print the loaded configuration file as YAML.

With a profile argument, print that profile fully resolved: defaults
merged in, system defaults applied, and the session token generated
if none is configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.DefaultPaths().ConfigFile())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		os.Stdout.Write(data)
		return nil
	}

	resolved, err := cfg.Resolve(args[0])
	if err != nil {
		return err
	}

	out := map[string]interface{}{
		"ssh_command_line_options": resolved.SSHArgs,
		"path_to_mount":            resolved.PathToMount,
		"mount_relative_to":        resolved.MountRelativeTo,
		"editor_command_name":      resolved.EditorCommandName,
		"custom_temp_dir":          resolved.CustomTempDir,
		"verbose":                  resolved.Verbose,
		"session_token":            resolved.SessionToken,
		"commands":                 resolved.Commands,
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	os.Stdout.Write(data)
	return nil
}
