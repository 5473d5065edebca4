package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/dfdoc/internal/browse"
)

// BrowseCmd creates the browse command.
func BrowseCmd() *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "browse <file.df>",
		Short: "Browse tables and fields in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			applyEncodingFlag(cmd, rt, encoding)

			s, err := rt.parse(args[0])
			if err != nil {
				return err
			}
			return browse.Run(cmd.Context(), s)
		},
	}

	addEncodingFlag(cmd, &encoding)
	return cmd
}
