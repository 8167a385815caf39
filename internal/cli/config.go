package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/waifufy/pkg/errors"
	"github.com/matzehuels/waifufy/pkg/pipeline"
)

// =============================================================================
// Config - waifufy.toml
// =============================================================================

// Config holds defaults loaded from waifufy.toml. Every field is optional;
// command-line flags always win over config values.
type Config struct {
	// Art conversion defaults.
	Width     int  `toml:"width"`
	Height    int  `toml:"height"`
	Threshold int  `toml:"threshold"`
	Invert    bool `toml:"invert"`

	// Layout defaults.
	Seed      int64 `toml:"seed"`
	Randomize bool  `toml:"randomize"`

	// Pipeline behavior.
	Verify  bool `toml:"verify"`
	NoCache bool `toml:"no_cache"`

	// Output behavior.
	Plain bool `toml:"plain"`
}

// loadConfig reads the config file at path. An empty path triggers the
// search order from configSearchPaths; a missing file is not an error in
// that case and yields a zero Config. An explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if err := decodeConfig(path, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	for _, candidate := range configSearchPaths() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := decodeConfig(candidate, &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return cfg, nil
}

func decodeConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := validateConfig(*cfg); err != nil {
		return err
	}
	return nil
}

// validateConfig checks config values with the same rules as flags.
func validateConfig(cfg Config) error {
	if err := errors.ValidateDimension("width", cfg.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", cfg.Height); err != nil {
		return err
	}
	if err := errors.ValidateThreshold(cfg.Threshold); err != nil {
		return err
	}
	if cfg.Seed < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "seed must be non-negative, got %d", cfg.Seed)
	}
	return nil
}

// applyConfig fills unset pipeline options from config values. Flags set the
// options before this runs, so only zero fields are touched.
func applyConfig(opts *pipeline.Options, cfg Config) {
	if opts.Width == 0 {
		opts.Width = cfg.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Height
	}
	if opts.Threshold == 0 {
		opts.Threshold = cfg.Threshold
	}
	if cfg.Invert {
		opts.Invert = true
	}
	if opts.Seed == 0 && cfg.Seed > 0 {
		opts.Seed = uint64(cfg.Seed)
	}
	if cfg.Randomize {
		opts.Randomize = true
	}
	if cfg.Verify {
		opts.Verify = true
	}
}
