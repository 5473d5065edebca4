package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonhull/dfdoc/internal/generator"
	"github.com/simonhull/dfdoc/internal/logger"
	"github.com/simonhull/dfdoc/internal/output"
	"github.com/simonhull/dfdoc/internal/render"
	"github.com/simonhull/dfdoc/internal/site"
)

// ConvertCmd creates the convert command.
func ConvertCmd() *cobra.Command {
	var (
		outDir   string
		xmlFile  string
		force    bool
		dryRun   bool
		markdown bool
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "convert <file.df>",
		Short: "Generate HTML pages and an XML document from a .df file",
		Long: `Parses a .df schema dump and writes:
  index.html       overview of all tables with descriptions
  sequences.html   list of sequences
  <table>.html     one page per table with its fields
  schema.xml       the whole schema as XML

Existing files are not overwritten unless --force is given. Files whose
content would not change are left alone.

Examples:
  dfdoc convert sports2000.df
  dfdoc convert sports2000.df -o docs --force
  dfdoc convert legacy.df --encoding 1252 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			applyEncodingFlag(cmd, rt, encoding)

			cfg := rt.cfg
			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output.Dir = outDir
			}
			if flags.Changed("xml") {
				cfg.Output.XMLFile = xmlFile
			}
			if flags.Changed("force") {
				cfg.Output.Force = force
			}
			if flags.Changed("markdown") {
				cfg.Site.Markdown = markdown
			}

			s, err := rt.parse(args[0])
			if err != nil {
				return err
			}

			xmlPath := cfg.Output.XMLFile
			if xmlPath != "" && !filepath.IsAbs(xmlPath) {
				xmlPath = filepath.Join(cfg.Output.Dir, xmlPath)
			}

			ops, err := site.Build(s, site.Options{
				Dir:     cfg.Output.Dir,
				XMLFile: xmlPath,
				Page: render.PageOptions{
					Title:    cfg.Site.Title,
					Heading:  cfg.Site.Heading,
					Markdown: cfg.Site.Markdown,
				},
				XML: render.XMLOptions{
					Indent:       cfg.XML.Indent,
					FieldDetails: cfg.XML.FieldDetails,
				},
			})
			if err != nil {
				return err
			}

			err = generator.Execute(cmd.Context(), ops, generator.ExecuteOptions{
				DryRun: dryRun,
				Force:  cfg.Output.Force,
				Writer: cmd.OutOrStdout(),
			})
			if errors.Is(err, generator.ErrFileExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			if err != nil {
				return err
			}

			if dryRun {
				output.Info(fmt.Sprintf("Dry run: %d files planned, nothing written", len(ops)))
				return nil
			}

			rt.log.Info("site written", logger.F("dir", cfg.Output.Dir), logger.F("files", len(ops)))
			output.Success(fmt.Sprintf("Documented %d tables in %s", s.Stats().Tables, cfg.Output.Dir))
			output.Step("open " + filepath.Join(cfg.Output.Dir, "index.html"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory (default from config: output_html)")
	cmd.Flags().StringVar(&xmlFile, "xml", "", "XML file name inside the output directory, empty to skip (default schema.xml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render table descriptions as Markdown")
	addEncodingFlag(cmd, &encoding)

	return cmd
}
