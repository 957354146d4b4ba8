package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxtree/internal/server"
	"github.com/matzehuels/boxtree/pkg/cache"
	errs "github.com/matzehuels/boxtree/pkg/errors"
	bio "github.com/matzehuels/boxtree/pkg/io"
	"github.com/matzehuels/boxtree/pkg/pipeline"
)

// Config mirrors config.toml. Zero values mean "use the built-in default".
type Config struct {
	Orientation  string `toml:"orientation"`
	InputFormat  string `toml:"input_format"`
	OutputFormat string `toml:"output_format"`
	Label        string `toml:"label"`
	Trim         bool   `toml:"trim"`
	BreakCycles  bool   `toml:"break_cycles"`
	Reduce       bool   `toml:"reduce"`
	MaxNodes     int    `toml:"max_nodes"`

	Cache cache.Config  `toml:"cache"`
	Serve server.Config `toml:"serve"`
}

// configPath returns the default config file location.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads the config file at path, or at the default location when
// path is empty. A missing file is only an error when it was named
// explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	var cfg Config
	if path == "" {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return Config{}, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errs.New(errs.ErrCodeInvalidConfig, "config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Orientation != "" {
		if err := pipeline.ValidateOrientation(c.Orientation); err != nil {
			return err
		}
	}
	if c.OutputFormat != "" {
		if err := pipeline.ValidateFormat(c.OutputFormat); err != nil {
			return err
		}
	}
	if c.InputFormat != "" {
		if _, err := bio.ParseFormat(c.InputFormat); err != nil {
			return err
		}
	}
	if c.Label != "" {
		if err := pipeline.ValidateLabelMode(c.Label); err != nil {
			return err
		}
	}
	if c.MaxNodes < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "max_nodes must not be negative, got %d", c.MaxNodes)
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	return nil
}

// options converts the config into pipeline defaults.
func (c Config) options() pipeline.Options {
	return pipeline.Options{
		InputFormat:  c.InputFormat,
		Orientation:  c.Orientation,
		OutputFormat: c.OutputFormat,
		Label:        c.Label,
		Trim:         c.Trim,
		BreakCycles:  c.BreakCycles,
		Reduce:       c.Reduce,
		MaxNodes:     c.MaxNodes,
	}
}
