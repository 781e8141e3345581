package cli

import (
	"github.com/spf13/cobra"

	infraConfig "github.com/0xb0rn3/blackutility/internal/infra/config"
	"github.com/0xb0rn3/blackutility/internal/interface/cli/categories"
	"github.com/0xb0rn3/blackutility/internal/interface/cli/common"
	"github.com/0xb0rn3/blackutility/internal/interface/cli/doctor"
	"github.com/0xb0rn3/blackutility/internal/interface/cli/install"
	"github.com/0xb0rn3/blackutility/internal/interface/cli/version"
)

// NewRoot builds the blackutility command tree.
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blackutility",
		Short: "Bulk installer for the BlackArch/Kali security-tool catalog",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration before any command runs.
			// Priority: config.yaml > defaults
			cfg, err := infraConfig.LoadSettings(infraConfig.SettingPath())
			if err != nil {
				return err
			}
			common.SetGlobalConfig(cfg)
			common.InitGlobalLogger(cfg.StderrLevel())
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(install.NewCommand())
	cmd.AddCommand(doctor.NewCommand())
	cmd.AddCommand(categories.NewCommand())
	cmd.AddCommand(version.NewCommand())
	return cmd
}
