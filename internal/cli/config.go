package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// configFileName is the config file discovered in the working directory
// when --config is not given.
const configFileName = "kicadfp.toml"

// Config carries defaults read from a kicadfp.toml file. Values apply
// only where the matching flag was left unset, so the precedence is
// flag, then config, then built-in default.
type Config struct {
	Out     string   `toml:"out"`
	Formats []string `toml:"formats"`
	Family  string   `toml:"family"`
	NoCache bool     `toml:"no_cache"`
	Scale   float64  `toml:"scale"`
	Margin  float64  `toml:"margin"`
	Addr    string   `toml:"addr"`
}

// loadConfig reads the config file at path, or discovers one in the
// working directory when path is empty. A missing discovered file is
// fine; a missing explicit path is an error.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = configFileName
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyGenerate overlays config values on generate flags the user did
// not set.
func (cfg *Config) applyGenerate(f *pflag.FlagSet, opts *generateOpts) {
	if cfg == nil {
		return
	}
	if !f.Changed("out") && cfg.Out != "" {
		opts.out = cfg.Out
	}
	if !f.Changed("format") && len(cfg.Formats) > 0 {
		opts.formats = cfg.Formats
	}
	if !f.Changed("family") && cfg.Family != "" {
		opts.family = cfg.Family
	}
	if !f.Changed("no-cache") && cfg.NoCache {
		opts.noCache = true
	}
	if !f.Changed("scale") && cfg.Scale > 0 {
		opts.scale = cfg.Scale
	}
	if !f.Changed("margin") && cfg.Margin > 0 {
		opts.margin = cfg.Margin
	}
}

// applyServe overlays config values on serve flags the user did not
// set.
func (cfg *Config) applyServe(f *pflag.FlagSet, opts *serveOpts) {
	if cfg == nil {
		return
	}
	if !f.Changed("addr") && cfg.Addr != "" {
		opts.addr = cfg.Addr
	}
	if !f.Changed("family") && cfg.Family != "" {
		opts.family = cfg.Family
	}
	if !f.Changed("no-cache") && cfg.NoCache {
		opts.noCache = true
	}
	if !f.Changed("scale") && cfg.Scale > 0 {
		opts.scale = cfg.Scale
	}
	if !f.Changed("margin") && cfg.Margin > 0 {
		opts.margin = cfg.Margin
	}
}
