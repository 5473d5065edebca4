package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/dfdoc/internal/config"
	"github.com/simonhull/dfdoc/internal/logger"
	"github.com/simonhull/dfdoc/internal/output"
	"github.com/simonhull/dfdoc/internal/schema"
)

// runtime is what every subcommand needs: resolved config and a logger.
type runtime struct {
	cfg *config.Config
	log logger.Logger
}

func setup(cmd *cobra.Command) (*runtime, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	levelName, _ := flags.GetString("log-level")
	verbose, _ := flags.GetBool("verbose")

	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = config.FileName
	}
	output.Verbose(fmt.Sprintf("Config: %s", path))

	return &runtime{cfg: cfg, log: log}, nil
}

// parse reads a .df file with the configured encoding.
func (rt *runtime) parse(path string) (*schema.Schema, error) {
	output.Verbose(fmt.Sprintf("Parsing %s (encoding %s)", path, rt.cfg.Input.Encoding))

	s, err := schema.ParseFile(path,
		schema.WithLogger(rt.log),
		schema.WithEncoding(rt.cfg.Input.Encoding),
	)
	if err != nil {
		if errors.Is(err, schema.ErrDecode) {
			return nil, fmt.Errorf("%w (set the input encoding with --encoding)", err)
		}
		return nil, err
	}

	st := s.Stats()
	rt.log.Info("parsed schema",
		logger.F("file", path),
		logger.F("sequences", st.Sequences),
		logger.F("tables", st.Tables),
		logger.F("fields", st.Fields),
	)
	for _, issue := range schema.Lint(s) {
		rt.log.Info("lint", logger.F("issue", issue.Error()))
	}
	return s, nil
}

// addEncodingFlag registers --encoding; the value overrides input.encoding
// when set.
func addEncodingFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVar(value, "encoding", "", "Input encoding: auto, utf-8, or a code page like ISO8859-1 or 1252")
}

func applyEncodingFlag(cmd *cobra.Command, rt *runtime, value string) {
	if cmd.Flags().Changed("encoding") {
		rt.cfg.Input.Encoding = value
	}
}
