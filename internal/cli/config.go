package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// Config holds generator defaults loaded from a TOML file. Every field is
// optional; zero values leave the pipeline defaults in place. Command-line
// flags always win over config values.
type Config struct {
	Mode      string   `toml:"mode"`
	MaxTerms  int      `toml:"max_terms"`
	StopWords []string `toml:"stop_words"`
	Seed      uint64   `toml:"seed"`

	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	FontFamily    string  `toml:"font_family"`
	MinFontSize   float64 `toml:"min_font_size"`
	MaxFontSize   float64 `toml:"max_font_size"`
	Padding       float64 `toml:"padding"`
	AngleStep     float64 `toml:"angle_step"`
	RadiusStep    float64 `toml:"radius_step"`
	MaxIterations int     `toml:"max_iterations"`

	Formats    []string `toml:"formats"`
	Scale      float64  `toml:"scale"`
	Background string   `toml:"background"`
	Palette    []string `toml:"palette"`
}

// loadConfig reads a config file. An explicit path must exist; the default
// path is optional and a missing file yields an empty config.
func loadConfig(explicit string) (Config, error) {
	path := explicit
	required := explicit != ""
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !required {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// applyUnset copies config values into opts for every field whose
// corresponding flag was not set on the command line.
func (c Config) applyUnset(cmd *cobra.Command, opts *pipeline.Options) {
	set := func(flag string) bool {
		f := cmd.Flags().Lookup(flag)
		return f != nil && f.Changed
	}

	if c.Mode != "" && !set("mode") {
		opts.Mode = c.Mode
	}
	if c.MaxTerms != 0 && !set("max-terms") {
		opts.MaxTerms = c.MaxTerms
	}
	if c.StopWords != nil && !set("stop-words") {
		opts.StopWords = c.StopWords
	}
	if c.Seed != 0 && !set("seed") {
		opts.Seed = c.Seed
	}
	if c.Width != 0 && !set("width") {
		opts.Width = c.Width
	}
	if c.Height != 0 && !set("height") {
		opts.Height = c.Height
	}
	if c.FontFamily != "" && !set("font") {
		opts.FontFamily = c.FontFamily
	}
	if c.MinFontSize != 0 && !set("min-font-size") {
		opts.MinFontSize = c.MinFontSize
	}
	if c.MaxFontSize != 0 && !set("max-font-size") {
		opts.MaxFontSize = c.MaxFontSize
	}
	if c.Padding != 0 && !set("padding") {
		opts.Padding = c.Padding
	}
	if c.AngleStep != 0 && !set("angle-step") {
		opts.AngleStep = c.AngleStep
	}
	if c.RadiusStep != 0 && !set("radius-step") {
		opts.RadiusStep = c.RadiusStep
	}
	if c.MaxIterations != 0 && !set("max-iterations") {
		opts.MaxIterations = c.MaxIterations
	}
	if len(c.Formats) > 0 && !set("format") {
		opts.Formats = c.Formats
	}
	if c.Scale != 0 && !set("scale") {
		opts.Scale = c.Scale
	}
	if c.Background != "" && !set("background") {
		opts.Background = c.Background
	}
	if len(c.Palette) > 0 && !set("palette") {
		opts.Palette = c.Palette
	}
}
