package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/dfdoc"
)

// VersionCmd creates the version command.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dfdoc version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dfdoc %s\n", dfdoc.Version)
		},
	}
}
