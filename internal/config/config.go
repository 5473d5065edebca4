// Package config loads dfdoc settings from dfdoc.yaml, DFDOC_* environment
// variables and built-in defaults, in that order of precedence (environment
// first).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "dfdoc.yaml"

// Config represents dfdoc.yaml
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Site    SiteConfig    `yaml:"site"`
	XML     XMLConfig     `yaml:"xml"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// InputConfig controls how .df files are read.
type InputConfig struct {
	Encoding string `yaml:"encoding"`
}

// OutputConfig controls where generated files go.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	XMLFile string `yaml:"xml_file"`
	Force   bool   `yaml:"force"`
}

// SiteConfig controls the HTML pages.
type SiteConfig struct {
	Title    string `yaml:"title"`
	Heading  string `yaml:"heading"`
	Markdown bool   `yaml:"markdown"`
}

// XMLConfig controls the XML document.
type XMLConfig struct {
	Indent       string `yaml:"indent"`
	FieldDetails bool   `yaml:"field_details"`
}

// CatalogConfig controls the SQLite export.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:   InputConfig{Encoding: "auto"},
		Output:  OutputConfig{Dir: "output_html", XMLFile: "schema.xml"},
		Site:    SiteConfig{Title: "DF Overview", Heading: "DF Overview"},
		XML:     XMLConfig{Indent: "  "},
		Catalog: CatalogConfig{Path: "schema.db"},
	}
}

// Load reads the config. An empty path searches the working directory for
// dfdoc.yaml. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("DFDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("dfdoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return &Config{
		Input: InputConfig{
			Encoding: v.GetString("input.encoding"),
		},
		Output: OutputConfig{
			Dir:     v.GetString("output.dir"),
			XMLFile: v.GetString("output.xml_file"),
			Force:   v.GetBool("output.force"),
		},
		Site: SiteConfig{
			Title:    v.GetString("site.title"),
			Heading:  v.GetString("site.heading"),
			Markdown: v.GetBool("site.markdown"),
		},
		XML: XMLConfig{
			Indent:       v.GetString("xml.indent"),
			FieldDetails: v.GetBool("xml.field_details"),
		},
		Catalog: CatalogConfig{
			Path: v.GetString("catalog.path"),
		},
	}, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("input.encoding", d.Input.Encoding)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.xml_file", d.Output.XMLFile)
	v.SetDefault("output.force", d.Output.Force)
	v.SetDefault("site.title", d.Site.Title)
	v.SetDefault("site.heading", d.Site.Heading)
	v.SetDefault("site.markdown", d.Site.Markdown)
	v.SetDefault("xml.indent", d.XML.Indent)
	v.SetDefault("xml.field_details", d.XML.FieldDetails)
	v.SetDefault("catalog.path", d.Catalog.Path)
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
