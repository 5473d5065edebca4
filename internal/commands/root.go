package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/dfdoc"
	"github.com/simonhull/dfdoc/internal/logger"
	"github.com/simonhull/dfdoc/internal/output"
)

// RootCmd creates and returns the root command for the dfdoc CLI
func RootCmd() *cobra.Command {
	var (
		verbose  bool
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "dfdoc",
		Short: "Documentation generator for Progress OpenEdge .df schema dumps",
		Long: `dfdoc reads the schema definition text produced by the Progress Data
Dictionary (.df files) and turns it into something people can read.

• Static HTML pages: an index, a sequence list and one page per table
• An XML document of sequences, tables and fields
• A SQLite catalog you can query with plain SQL
• An interactive terminal browser

Settings come from dfdoc.yaml, DFDOC_* environment variables and flags.`,
		Version:      dfdoc.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetVerbose(verbose)
			output.SetWriter(cmd.OutOrStdout())
			_, err := logger.ParseLevel(logLevel)
			return err
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level on stderr (debug, info, warn, error, silent)")
	cmd.PersistentFlags().StringP("config", "c", "", "Config file (default ./dfdoc.yaml)")

	return cmd
}

// Register adds every dfdoc subcommand to root.
func Register(root *cobra.Command) {
	root.AddCommand(ConvertCmd())
	root.AddCommand(InspectCmd())
	root.AddCommand(ExportCmd())
	root.AddCommand(BrowseCmd())
	root.AddCommand(ConfigCmd())
	root.AddCommand(VersionCmd())
}
