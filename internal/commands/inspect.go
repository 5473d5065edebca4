package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/dfdoc/internal/output"
	"github.com/simonhull/dfdoc/internal/schema"
)

// document is the yaml/json shape of a parsed schema.
type document struct {
	Sequences []string       `json:"sequences" yaml:"sequences"`
	Tables    []schema.Table `json:"tables" yaml:"tables"`
}

// InspectCmd creates the inspect command.
func InspectCmd() *cobra.Command {
	var (
		lint     bool
		format   string
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "inspect <file.df>",
		Short: "Summarize a .df file and report authoring issues",
		Long: `Prints one line per table with its field count and description.

With --lint, reports tables that were never declared with ADD TABLE, tables
without fields, and duplicate sequence or field names. Any finding makes the
command exit non-zero.

Examples:
  dfdoc inspect sports2000.df
  dfdoc inspect sports2000.df --lint
  dfdoc inspect sports2000.df --format yaml`,
		Args: cobra.ExactArgs(1),
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

			w := cmd.OutOrStdout()
			switch format {
			case "text":
				output.Summary(w, s, writerWidth(w))
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(document{Sequences: s.Sequences, Tables: s.Tables()}); err != nil {
					return fmt.Errorf("encoding yaml: %w", err)
				}
				if err := enc.Close(); err != nil {
					return fmt.Errorf("encoding yaml: %w", err)
				}
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(document{Sequences: s.Sequences, Tables: s.Tables()}); err != nil {
					return fmt.Errorf("encoding json: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q (want text, yaml or json)", format)
			}

			if !lint {
				return nil
			}
			issues := schema.Lint(s)
			if len(issues) == 0 {
				output.Success("No issues found")
				return nil
			}
			for _, issue := range issues {
				output.Error(issue.Error())
			}
			return fmt.Errorf("lint found %d issues", len(issues))
		},
	}

	cmd.Flags().BoolVar(&lint, "lint", false, "Report authoring issues and exit non-zero if any")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, yaml or json")
	addEncodingFlag(cmd, &encoding)

	return cmd
}

// writerWidth is the terminal width when w is a terminal.
func writerWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return output.TerminalWidth(f)
	}
	return output.DefaultWidth
}
