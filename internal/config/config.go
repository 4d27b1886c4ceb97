package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// CommandTemplate is a local shell invocation template. In YAML it may be
// written either as a sequence of arguments or as a single string, which is
// split with POSIX shlex rules.
type CommandTemplate []string

// UnmarshalYAML accepts both `["code", "-w"]` and `"code -w"`.
func (c *CommandTemplate) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		argv, err := shlex.Split(raw)
		if err != nil {
			return fmt.Errorf("splitting command %q: %w", raw, err)
		}
		*c = argv
		return nil
	case yaml.SequenceNode:
		var argv []string
		if err := value.Decode(&argv); err != nil {
			return err
		}
		*c = argv
		return nil
	default:
		return fmt.Errorf("command must be a string or a list of strings (line %d)", value.Line)
	}
}

// Profile holds the per-host session settings. The same shape is used for
// the defaults block, which is merged underneath every profile.
type Profile struct {
	SSHCommandLineOptions []string                   `yaml:"ssh_command_line_options"`
	PathToMount           string                     `yaml:"path_to_mount"`
	MountRelativeTo       string                     `yaml:"mount_relative_to"`
	EditorCommandName     string                     `yaml:"editor_command_name"`
	CustomTempDir         string                     `yaml:"custom_temp_dir"`
	Verbose               bool                       `yaml:"verbose"`
	SessionToken          string                     `yaml:"session_token"`
	Commands              map[string]CommandTemplate `yaml:"commands"`
}

// Config represents the editorlink configuration file.
type Config struct {
	Defaults Profile            `yaml:"defaults"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// Resolved is a fully merged, validated profile ready to hand to the
// session core. It is immutable after Resolve returns it.
type Resolved struct {
	Name              string
	SSHArgs           []string
	PathToMount       string
	MountRelativeTo   string
	EditorCommandName string
	CustomTempDir     string
	Verbose           bool
	SessionToken      string
	Commands          map[string][]string
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file. A missing file
// yields an empty configuration rather than an error.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ProfileNames returns the configured profile names, sorted.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve merges the defaults block and the named profile, applies system
// defaults, generates a session token when none is configured, and validates
// the result.
func (c *Config) Resolve(name string) (*Resolved, error) {
	profile, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q is not configured (known profiles: %v)", name, c.ProfileNames())
	}

	merged := mergeProfiles(c.Defaults, profile)

	r := &Resolved{
		Name:              name,
		SSHArgs:           merged.SSHCommandLineOptions,
		PathToMount:       merged.PathToMount,
		MountRelativeTo:   merged.MountRelativeTo,
		EditorCommandName: merged.EditorCommandName,
		CustomTempDir:     merged.CustomTempDir,
		Verbose:           merged.Verbose,
		SessionToken:      merged.SessionToken,
	}

	if r.MountRelativeTo == "" {
		r.MountRelativeTo = "/"
	}
	if r.EditorCommandName == "" {
		r.EditorCommandName = "ec"
	}
	if r.SessionToken == "" {
		r.SessionToken = uuid.NewString()
	}

	// An explicitly configured command table replaces the system default
	// wholesale; no commands at all means "file" opens via the OS opener.
	if len(merged.Commands) == 0 {
		r.Commands = map[string][]string{"file": {"open"}}
	} else {
		r.Commands = make(map[string][]string, len(merged.Commands))
		for cmd, argv := range merged.Commands {
			r.Commands[cmd] = append([]string(nil), argv...)
		}
	}

	r.applyEnvOverrides()

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return r, nil
}

func mergeProfiles(defaults, profile Profile) Profile {
	merged := defaults
	if len(profile.SSHCommandLineOptions) > 0 {
		merged.SSHCommandLineOptions = profile.SSHCommandLineOptions
	}
	if profile.PathToMount != "" {
		merged.PathToMount = profile.PathToMount
	}
	if profile.MountRelativeTo != "" {
		merged.MountRelativeTo = profile.MountRelativeTo
	}
	if profile.EditorCommandName != "" {
		merged.EditorCommandName = profile.EditorCommandName
	}
	if profile.CustomTempDir != "" {
		merged.CustomTempDir = profile.CustomTempDir
	}
	if profile.Verbose {
		merged.Verbose = true
	}
	if profile.SessionToken != "" {
		merged.SessionToken = profile.SessionToken
	}
	if len(profile.Commands) > 0 {
		merged.Commands = profile.Commands
	}
	return merged
}

func (r *Resolved) applyEnvOverrides() {
	if v := os.Getenv("EDITORLINK_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			r.Verbose = true
		}
	}
}

func (r *Resolved) validate() error {
	if len(r.SSHArgs) == 0 {
		return fmt.Errorf("ssh_command_line_options must not be empty")
	}
	for _, arg := range r.SSHArgs {
		if arg == "" {
			return fmt.Errorf("ssh_command_line_options must not contain empty strings")
		}
	}
	if r.PathToMount == "" {
		return fmt.Errorf("path_to_mount is required")
	}
	for cmd, argv := range r.Commands {
		if len(argv) == 0 {
			return fmt.Errorf("commands.%s must not be empty", cmd)
		}
	}
	return nil
}
