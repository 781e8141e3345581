package doctor

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xb0rn3/blackutility/internal/app/preflight"
	"github.com/0xb0rn3/blackutility/internal/interface/cli/common"
)

// NewCommand creates the doctor command. It runs every preflight check
// read-only and reports each outcome instead of short-circuiting.
func NewCommand() *cobra.Command {
	var skipNetwork bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the host against the installer's preconditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := common.GetGlobalConfig()
			validator := preflight.New(
				cfg.MinDiskBytes(),
				cfg.MinMemoryBytes(),
				preflight.HostFamiliesFor(cfg.Manager()),
				preflight.DBLockPathFor(cfg.Manager()),
			)
			validator.SkipNetwork = skipNetwork

			out := cmd.OutOrStdout()
			failures := 0
			for _, check := range validator.Checks() {
				if err := check.Run(); err != nil {
					failures++
					fmt.Fprintf(out, "FAIL %-22s %v\n", check.Name, err)
				} else {
					fmt.Fprintf(out, "OK   %s\n", check.Name)
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d preflight check(s) failed", failures)
			}
			fmt.Fprintln(out, "All preflight checks passed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipNetwork, "skip-network", false, "Skip the connectivity probe")
	return cmd
}
