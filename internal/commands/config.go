package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/dfdoc/internal/config"
	"github.com/simonhull/dfdoc/internal/output"
)

// ConfigCmd creates the config command.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dfdoc.yaml",
	}
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		force       bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Long: `Writes dfdoc.yaml (or the given path) with the default settings.

With --interactive, asks for the most common settings first and confirms
before replacing an existing file.

Examples:
  dfdoc config init
  dfdoc config init -i
  dfdoc config init conf/dfdoc.yaml --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}

			cfg := config.Default()
			var prompter *output.Prompter
			if interactive {
				prompter = output.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				cfg.Site.Title = prompter.Prompt("Site title", cfg.Site.Title)
				cfg.Site.Heading = prompter.Prompt("Page heading", cfg.Site.Title)
				cfg.Output.Dir = prompter.Prompt("Output directory", cfg.Output.Dir)
				cfg.Input.Encoding = prompter.Prompt("Input encoding", cfg.Input.Encoding)
			}

			if _, err := os.Stat(path); err == nil && !force {
				if prompter == nil || !prompter.Confirm(fmt.Sprintf("%s exists. Overwrite?", path), false) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}

			output.Success(fmt.Sprintf("Created %s", path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask for settings instead of writing defaults")
	return cmd
}
