package categories

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0xb0rn3/blackutility/internal/domain/catalog"
)

// NewCommand creates the categories command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the installable tool categories",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range catalog.Names() {
				pkgs, _ := catalog.Lookup(name)
				if name == catalog.All {
					fmt.Fprintf(out, "%-24s (full catalog from the package manager)\n", name)
					continue
				}
				fmt.Fprintf(out, "%-24s %s\n", name, strings.Join(pkgs, ", "))
			}
		},
	}
}
