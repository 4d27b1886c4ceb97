package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/editorlink/internal/config"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List configured profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		names := cfg.ProfileNames()
		if len(names) == 0 {
			paths := config.DefaultPaths()
			fmt.Printf("No profiles configured. Add one to %s\n", paths.ConfigFile())
			return nil
		}

		for _, name := range names {
			profile := cfg.Profiles[name]
			fmt.Printf("%s\n", name)
			fmt.Printf("  ssh: %v\n", profile.SSHCommandLineOptions)
			fmt.Printf("  mount: %s\n", profile.PathToMount)
		}
		return nil
	},
}
