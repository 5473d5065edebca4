package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/dfdoc/internal/catalog"
	"github.com/simonhull/dfdoc/internal/logger"
	"github.com/simonhull/dfdoc/internal/output"
)

// ExportCmd creates the export command.
func ExportCmd() *cobra.Command {
	var (
		dbPath   string
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "export <file.df>",
		Short: "Write the schema to a SQLite catalog",
		Long: `Recreates a SQLite database with the tables sequences, tables and fields.

Examples:
  dfdoc export sports2000.df
  dfdoc export sports2000.df --db /tmp/sports.db
  sqlite3 schema.db "SELECT name FROM fields WHERE type = 'date'"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			applyEncodingFlag(cmd, rt, encoding)
			if cmd.Flags().Changed("db") {
				rt.cfg.Catalog.Path = dbPath
			}

			s, err := rt.parse(args[0])
			if err != nil {
				return err
			}

			path := rt.cfg.Catalog.Path
			output.Verbose(fmt.Sprintf("Writing catalog %s", path))
			if err := catalog.Export(cmd.Context(), path, s); err != nil {
				return fmt.Errorf("exporting catalog: %w", err)
			}

			st := s.Stats()
			rt.log.Info("catalog written", logger.F("path", path), logger.F("tables", st.Tables))
			output.Success(fmt.Sprintf("Exported %d tables and %d fields to %s", st.Tables, st.Fields, path))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file to write (default from config: schema.db)")
	addEncodingFlag(cmd, &encoding)

	return cmd
}
