package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xb0rn3/blackutility/internal/buildinfo"
)

// NewCommand creates the version command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blackutility version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.GetVersion())
		},
	}
}
